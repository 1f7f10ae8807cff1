package playback

//go:generate mockgen -destination=mocks/sink_mock.go -package=mocks github.com/llehouerou/reel/internal/playback MediaSink,PresentationSink

// MediaSink loads and starts media. An empty source clears it.
//
// Implementations must not call back into the controller synchronously;
// the natural end of media is reported as an EventEnded on a channel.
type MediaSink interface {
	SetSource(url string)
	Play()
}

// PresentationSink shows the active item's label.
type PresentationSink interface {
	SetLabel(text string)
	SetActive(active bool)
}

type teeMedia []MediaSink

func (t teeMedia) SetSource(url string) {
	for _, s := range t {
		s.SetSource(url)
	}
}

func (t teeMedia) Play() {
	for _, s := range t {
		s.Play()
	}
}

// TeeMedia returns a MediaSink forwarding every call to all sinks in order.
func TeeMedia(sinks ...MediaSink) MediaSink {
	return teeMedia(sinks)
}

type teePresentation []PresentationSink

func (t teePresentation) SetLabel(text string) {
	for _, s := range t {
		s.SetLabel(text)
	}
}

func (t teePresentation) SetActive(active bool) {
	for _, s := range t {
		s.SetActive(active)
	}
}

// TeePresentation returns a PresentationSink forwarding every call to all sinks in order.
func TeePresentation(sinks ...PresentationSink) PresentationSink {
	return teePresentation(sinks)
}
