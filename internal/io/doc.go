// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - Writing files and creating directories
//   - Decoding and scaling cover art for terminal previews
//
// # File Operations
//
//	err := ioutils.EnsureDir("/home/user/.config/albumlinks")
//	err = ioutils.WriteFile(path, []byte("{}"))
//
// # Image Processing
//
// The ImageService turns downloaded cover art into a small RGBA image that
// the terminal browser renders with half-block characters:
//
//	svc := ioutils.NewImageService()
//	thumb, err := svc.Thumbnail(ctx, coverBytes, 24, 24)
package ioutils
