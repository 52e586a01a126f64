package output

import (
	"fmt"
	"net"
	"strconv"

	"github.com/hypebeast/go-osc/osc"
	"github.com/robmorgan/metronome/logger"
)

const (
	OSCAddressBeat  = "/metronome/beat"
	OSCAddressChord = "/metronome/chord"
	OSCAddressDrone = "/metronome/drone"
)

type oscSender interface {
	Send(packet osc.Packet) error
}

// OSC forwards every beat as OSC messages, e.g. to drive lights or a DAW.
//
//	/metronome/beat  <beat int64> <audible bool> <bpm int32>
//	/metronome/chord <beat int64> <name string> <hz float32>...
//	/metronome/drone <hz float32>...
type OSC struct {
	client oscSender
}

// NewOSC returns an OSC sink sending to addr, given as host:port.
func NewOSC(addr string) (*OSC, error) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid OSC address %q: %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid OSC port in %q", addr)
	}
	if host == "" {
		host = "127.0.0.1"
	}
	return &OSC{client: osc.NewClient(host, port)}, nil
}

func (o *OSC) Play(ev PlaybackEvent) {
	o.send(osc.NewMessage(OSCAddressBeat, int64(ev.Beat), ev.Audible, int32(ev.Tempo.BPM)))

	if ev.Audible && ev.Harmonic() {
		msg := osc.NewMessage(OSCAddressChord, int64(ev.Beat), ev.Chord)
		for _, f := range ev.Pitches {
			msg.Append(float32(f))
		}
		o.send(msg)
	}
}

func (o *OSC) Sustain(pitches []float64) {
	msg := osc.NewMessage(OSCAddressDrone)
	for _, f := range pitches {
		msg.Append(float32(f))
	}
	o.send(msg)
}

func (o *OSC) Close() error { return nil }

func (o *OSC) send(msg *osc.Message) {
	if err := o.client.Send(msg); err != nil {
		logger.GetProjectLogger().WithError(err).WithField("address", msg.Address).Warn("failed to send OSC message")
	}
}
