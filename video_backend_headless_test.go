// video_backend_headless_test.go - Headless backend sanity tests

/*
Cosmac8 - A CHIP-8 virtual machine

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/Cosmac8
License: GPLv3 or later
*/

package main

import (
	"errors"
	"testing"
)

func TestHeadlessLifecycle(t *testing.T) {
	video, err := NewVideoOutput(VIDEO_BACKEND_HEADLESS, 1)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	requireFalse(t, "started before Start", video.IsStarted())
	if err := video.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	requireTrue(t, "started", video.IsStarted())

	select {
	case <-video.Done():
		t.Fatal("done closed while running")
	default:
	}

	if err := video.Stop(); err != nil {
		t.Fatalf("stop: %v", err)
	}
	select {
	case <-video.Done():
	default:
		t.Fatal("done not closed after Stop")
	}
}

func TestHeadlessFrameValidation(t *testing.T) {
	video, _ := NewVideoOutput(VIDEO_BACKEND_HEADLESS, 1)
	ho := video.(*HeadlessOutput)

	if err := ho.UpdateFrame(make([]byte, 7)); err == nil {
		t.Fatal("short buffer accepted")
	}
	if ho.LastFrame() != nil {
		t.Fatal("rejected frame was stored")
	}

	buf := make([]byte, PIXEL_COUNT*4)
	buf[0] = 0xFF
	if err := ho.UpdateFrame(buf); err != nil {
		t.Fatalf("frame update: %v", err)
	}
	frame := ho.LastFrame()
	requireEqualU8(t, "stored pixel", frame[0], 0xFF)
	requireEqualU64(t, "frame count", ho.FrameCount(), 1)
}

func TestUnknownBackendRejected(t *testing.T) {
	_, err := NewVideoOutput(99, 1)
	if err == nil {
		t.Fatal("unknown backend accepted")
	}
	var verr *VideoError
	if !errors.As(err, &verr) {
		t.Fatalf("error type %T, want *VideoError", err)
	}
}
