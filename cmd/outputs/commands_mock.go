package main

import (
	"context"
	"image"
)

type mockOutputManager struct {
	saveFileFn  func(tmpPath, name, ext string) (string, error)
	saveImageFn func(img image.Image, name, ext string) (string, error)
	deleteFn    func(rel string) bool
	toBase64Fn  func(rel string) (string, error)
	toBytesFn   func(rel string) ([]byte, error)
	publishFn   func(ctx context.Context, rel string) (string, error)
}

func (m *mockOutputManager) SaveFile(tmpPath, name, ext string) (string, error) {
	return m.saveFileFn(tmpPath, name, ext)
}

func (m *mockOutputManager) SaveImage(img image.Image, name, ext string) (string, error) {
	return m.saveImageFn(img, name, ext)
}

func (m *mockOutputManager) Delete(rel string) bool {
	return m.deleteFn(rel)
}

func (m *mockOutputManager) ToBase64(rel string) (string, error) {
	return m.toBase64Fn(rel)
}

func (m *mockOutputManager) ToBytes(rel string) ([]byte, error) {
	return m.toBytesFn(rel)
}

func (m *mockOutputManager) GetPublicURL(ctx context.Context, rel string) (string, error) {
	return m.publishFn(ctx, rel)
}
