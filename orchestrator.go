// orchestrator.go - C8: the library's single public entry point, wiring
// C2 (image fitter) -> C3 (encoder) -> C5 (effects pipeline) -> C6 (player)
// -> C7 (decoder) into the transmit/decode operations described in the
// external-interfaces contract.
//
// Status reporting follows audio_chip.go's log.Printf convention rather
// than introducing a structured logging dependency the teacher never uses.
package sstv

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"sync/atomic"
	"time"
)

// Orchestrator is the library's top-level handle. The zero value is usable.
type Orchestrator struct{}

// NewOrchestrator constructs an Orchestrator.
func NewOrchestrator() *Orchestrator { return &Orchestrator{} }

// KnownModes lists every statically registered mode.
func (o *Orchestrator) KnownModes() []Mode { return KnownModes() }

// EncodeOnly fits src into modeName's frame and synthesizes its SSTV audio,
// without playback or effects. w/h are only consulted for ModeNative.
func (o *Orchestrator) EncodeOnly(src image.Image, modeName string, w, h int) ([]float32, Mode, error) {
	m, err := LookupMode(modeName, w, h)
	if err != nil {
		return nil, Mode{}, wrapErr("EncodeOnly", modeName, err)
	}

	var fitted *image.RGBA
	if m.Name == ModeNative {
		fitted, _ = FitImageNative(src)
	} else {
		fitted, _ = FitImage(src, m.Width, m.Height)
	}

	bytes := newImageRGBBytes(fitted, m.Order)
	audio := Encode(bytes, m, SampleRate)
	return audio, m, nil
}

// DecodeBatchFile demodulates a full WAV file back into an image.
func (o *Orchestrator) DecodeBatchFile(r io.ReadSeeker, modeName string, w, h int) (*image.RGBA, error) {
	samples, sampleRate, err := ReadWAV(r)
	if err != nil {
		return nil, wrapErr("DecodeBatchFile", "read", err)
	}
	m, err := LookupMode(modeName, w, h)
	if err != nil {
		return nil, wrapErr("DecodeBatchFile", modeName, err)
	}
	img, err := DecodeBatch(samples, m, sampleRate)
	if err != nil {
		return nil, wrapErr("DecodeBatchFile", "decode", err)
	}
	return img, nil
}

// TransmissionHandle controls one in-flight real-time transmission: the
// player driving the speaker and the decoder shadowing it over the ring
// buffer, so a caller can watch its own transmission come back as a
// decoded image while it plays. After Stop, it runs a clean-reference batch
// decode over the original (pre-effect) audio and emits it line by line via
// OnCleanLine, so the caller can show an A/B comparison against the
// effected lines already emitted through Decoder.OnLine.
type TransmissionHandle struct {
	Mode        Mode
	Player      *RealTimePlayer
	Pipeline    *Pipeline
	Decoder     *StreamingDecoder
	OnError     func(error)
	OnCleanLine func(y int, row []color.RGBA)
	OnFinished  func()

	stop      chan struct{}
	cleanDone atomic.Bool
}

// pollIntervalMS is how often the shadowing decoder polls the ring buffer,
// at the data model's required "10ms or less" cadence.
const pollIntervalMS = 8

// Start begins real-time playback and starts a goroutine that polls the
// shadowing decoder at pollIntervalMS until Stop is called. Errors from the
// audio device surface through OnError if set, and the player is stopped
// cleanly before returning control.
func (h *TransmissionHandle) Start() error {
	if err := h.Player.Start(); err != nil {
		if h.OnError != nil {
			h.OnError(wrapErr("Transmit", "device start", err))
		}
		h.Player.Stop()
		return err
	}

	h.stop = make(chan struct{})
	go h.pollLoop()
	return nil
}

func (h *TransmissionHandle) pollLoop() {
	ticker := time.NewTicker(pollIntervalMS * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			h.Decoder.Poll()
			if h.Player.Done() {
				return
			}
		}
	}
}

// Stop halts playback, releases the device and stops the shadowing
// decoder's poll loop, then kicks off the post-playback clean-reference
// decode pass in the background.
func (h *TransmissionHandle) Stop() {
	h.Player.Stop()
	h.Player.Close()
	if h.stop != nil {
		close(h.stop)
		h.stop = nil
	}
	go h.runCleanReferencePass()
}

// runCleanReferencePass batch-decodes the original, pre-effect audio once
// playback has stopped, emitting each row through OnCleanLine and finally
// calling OnFinished - the "clean reference" image for A/B comparison
// against the effected lines already emitted via Decoder.OnLine.
func (h *TransmissionHandle) runCleanReferencePass() {
	defer func() {
		h.cleanDone.Store(true)
		if h.OnFinished != nil {
			h.OnFinished()
		}
	}()

	img, err := DecodeBatch(h.Player.clean, h.Mode, h.Player.sampleRate)
	if err != nil {
		if h.OnError != nil {
			h.OnError(wrapErr("Transmit", "clean reference decode", err))
		}
		return
	}
	if h.OnCleanLine == nil {
		return
	}
	for y := 0; y < h.Mode.Height; y++ {
		row := make([]color.RGBA, h.Mode.Width)
		for x := 0; x < h.Mode.Width; x++ {
			row[x] = img.RGBAAt(x, y)
		}
		h.OnCleanLine(y, row)
	}
}

// Status returns a short human-readable progress string, e.g. for a CLI
// progress line.
func (h *TransmissionHandle) Status() string {
	pos := h.Player.Position()
	total := len(h.Player.clean)
	if total == 0 {
		return "idle"
	}
	pct := 100 * pos / total
	return formatStatus(h.Mode.Name, pos, total, pct)
}

func formatStatus(mode string, pos, total, pct int) string {
	return fmt.Sprintf("%s: %d%% (%d/%d samples)", mode, pct, pos, total)
}

// Progress returns a single monotone 0..100 estimate of overall
// transmission completion: up to 90 from player position during playback,
// and 100 once the post-stop clean-reference decode pass has finished - the
// "fixed budget for clean decode" the data model calls for.
func (h *TransmissionHandle) Progress() int {
	if h.cleanDone.Load() {
		return 100
	}
	total := len(h.Player.clean)
	if total == 0 {
		return 0
	}
	pct := 90 * h.Player.Position() / total
	if pct > 90 {
		pct = 90
	}
	return pct
}

// Transmit fits src into modeName's frame, encodes it, wires up the effects
// pipeline and a real-time player plus a shadowing streaming decoder, and
// returns a handle the caller starts explicitly. Initial pipeline
// parameters, if non-nil, are applied before playback begins.
// onEffectedLine fires as each line is decoded off the live (effected)
// audio; onCleanLine fires once per line during the post-stop
// clean-reference pass; onFinished fires once that pass completes. Returns
// an error wrapping ErrUnknownMode for an unknown mode, or ErrAudioDevice if
// the audio device cannot be opened, before playback starts; failures after
// that point are reported through the returned handle's OnError.
func (o *Orchestrator) Transmit(
	src image.Image, modeName string, w, h int, initial *ParamSnapshot,
	onEffectedLine func(y int, row []color.RGBA),
	onCleanLine func(y int, row []color.RGBA),
	onFinished func(),
	onError func(error),
) (*TransmissionHandle, error) {
	clean, m, err := o.EncodeOnly(src, modeName, w, h)
	if err != nil {
		return nil, err
	}

	pipeline := NewPipeline()
	if initial != nil {
		pipeline.Snapshot = *initial
	}

	player, err := NewRealTimePlayer(clean, pipeline, SampleRate, 1024)
	if err != nil {
		if onError != nil {
			onError(err)
		}
		return nil, wrapErr("Transmit", err.Error(), ErrAudioDevice)
	}

	decoder := NewStreamingDecoder(player, m, SampleRate)
	decoder.OnLine = onEffectedLine

	log.Printf("sstv: transmit mode=%s width=%d height=%d samples=%d", m.Name, m.Width, m.Height, len(clean))

	return &TransmissionHandle{
		Mode: m, Player: player, Pipeline: pipeline, Decoder: decoder,
		OnError: onError, OnCleanLine: onCleanLine, OnFinished: onFinished,
	}, nil
}
