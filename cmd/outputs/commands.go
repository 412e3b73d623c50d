package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

type OutputManager interface {
	SaveFile(tmpPath, name, ext string) (string, error)
	SaveImage(img image.Image, name, ext string) (string, error)
	Delete(rel string) bool
	ToBase64(rel string) (string, error)
	ToBytes(rel string) ([]byte, error)
	GetPublicURL(ctx context.Context, rel string) (string, error)
}

const usage = `usage: outputs <command> [args]

commands:
  save <tmp-file> <name> [ext]        move a temp file into today's output dir
  save-image <image> <name> [ext]     decode an image and encode it into today's output dir
  delete <rel-path>                   delete a stored file
  base64 <rel-path>                   print the stored file as a data-URI
  bytes <rel-path> <dst>              write the stored file re-encoded as PNG to dst
  publish <rel-path>                  upload the stored file and print its public URL
`

func printUsage(w io.Writer) {
	fmt.Fprint(w, usage)
}

// run executes one command and returns the process exit code
func run(ctx context.Context, mgr OutputManager, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 2
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "save", "save-image":
		if len(rest) < 2 || len(rest) > 3 {
			printUsage(stderr)
			return 2
		}
		ext := ""
		if len(rest) == 3 {
			ext = rest[2]
		}

		var rel string
		var err error
		if cmd == "save" {
			rel, err = mgr.SaveFile(rest[0], rest[1], ext)
		} else {
			var img image.Image
			img, err = imaging.Open(rest[0])
			if err == nil {
				rel, err = mgr.SaveImage(img, rest[1], ext)
			}
		}
		if err != nil {
			fmt.Fprintf(stderr, "%s failed: %v\n", cmd, err)
			return 1
		}
		fmt.Fprintln(stdout, rel)

	case "delete":
		if len(rest) != 1 {
			printUsage(stderr)
			return 2
		}
		ok := mgr.Delete(rest[0])
		fmt.Fprintln(stdout, ok)
		if !ok {
			return 1
		}

	case "base64":
		if len(rest) != 1 {
			printUsage(stderr)
			return 2
		}
		uri, err := mgr.ToBase64(rest[0])
		if err != nil {
			fmt.Fprintf(stderr, "base64 failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, uri)

	case "bytes":
		if len(rest) != 2 {
			printUsage(stderr)
			return 2
		}
		data, err := mgr.ToBytes(rest[0])
		if err != nil {
			fmt.Fprintf(stderr, "bytes failed: %v\n", err)
			return 1
		}
		if err := os.WriteFile(rest[1], data, 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write %q: %v\n", rest[1], err)
			return 1
		}
		fmt.Fprintln(stdout, rest[1])

	case "publish":
		if len(rest) != 1 {
			printUsage(stderr)
			return 2
		}
		u, err := mgr.GetPublicURL(ctx, rest[0])
		if err != nil {
			fmt.Fprintf(stderr, "publish failed: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout, u)

	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		printUsage(stderr)
		return 2
	}

	return 0
}
