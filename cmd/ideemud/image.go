package main

import "os"

// fileImage adapts an *os.File to ide.Image. This package is the only
// place in the module that opens image files — the ide package itself
// only ever sees the Image interface.
type fileImage struct {
	*os.File
	name string
}

func openImage(path string) (*fileImage, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &fileImage{File: f, name: path}, nil
}

func (f *fileImage) Size() int64 {
	fi, err := f.Stat()
	if err != nil {
		return 0
	}
	return fi.Size()
}

func (f *fileImage) Name() string {
	return f.name
}
