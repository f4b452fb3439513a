// Package version exposes build metadata for the posts binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/ncobase/posts/version.Version=1.2.3 \
//	  -X github.com/ncobase/posts/version.Branch=main \
//	  -X github.com/ncobase/posts/version.Revision=abc123 \
//	  -X 'github.com/ncobase/posts/version.BuiltAt=$(date)'" ./cmd/posts
//
// Anything left unset falls back to the module and VCS information the go tool
// embeds in the binary.
package version
