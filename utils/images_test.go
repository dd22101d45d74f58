package utils

import (
	"os"
	"path/filepath"
	"testing"
)

var (
	pngBytes  = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 16)...)
	gifBytes  = append([]byte("GIF89a"), make([]byte, 16)...)
	jpegBytes = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
)

func TestImageExt(t *testing.T) {
	tests := []struct {
		filename string
		ext      string
		ok       bool
	}{
		{"a.png", "png", true},
		{"a.PNG", "png", true},
		{"photo.jpeg", "jpeg", true},
		{"anim.gif", "gif", true},
		{"pic.jpg", "jpg", true},
		{"noext", "", false},
		{"a.exe", "", false},
		{"a.", "", false},
		// the candidate is the segment after the first dot
		{"a.tar.gz", "", false},
		{"a.png.exe", "png", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			ext, ok := ImageExt(tt.filename)
			if ok != tt.ok || ext != tt.ext {
				t.Errorf("ImageExt(%q) = (%q, %v), want (%q, %v)", tt.filename, ext, ok, tt.ext, tt.ok)
			}
		})
	}
}

func TestAccept(t *testing.T) {
	store, err := NewImageStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	tests := []struct {
		name     string
		data     []byte
		filename string
		ext      string
		ok       bool
	}{
		{"png", pngBytes, "a.png", "png", true},
		{"png uppercase name", pngBytes, "a.PNG", "png", true},
		{"gif", gifBytes, "a.gif", "gif", true},
		{"jpeg", jpegBytes, "a.jpg", "jpg", true},
		{"bad extension", pngBytes, "a.exe", "", false},
		{"no extension", pngBytes, "noext", "", false},
		{"text bytes under image name", []byte("#!/bin/sh\nrm -rf /\n"), "a.png", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, ok := store.Accept(tt.data, tt.filename)
			if ok != tt.ok || ext != tt.ext {
				t.Errorf("Accept(%q) = (%q, %v), want (%q, %v)", tt.filename, ext, ok, tt.ext, tt.ok)
			}
		})
	}
}

func TestSaveWritesKeyedFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(dir)
	if err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}

	if err := store.Save(pngBytes, 42, "png"); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "42.png"))
	if err != nil {
		t.Fatalf("read saved image: %v", err)
	}
	if string(got) != string(pngBytes) {
		t.Error("saved bytes differ from uploaded bytes")
	}
}

func TestNewImageStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "img")
	if _, err := NewImageStore(dir); err != nil {
		t.Fatalf("NewImageStore: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("image dir not created: %v", err)
	}
}
