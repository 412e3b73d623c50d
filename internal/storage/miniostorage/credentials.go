package miniostorage

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/UnendingLoop/ImageOutputs/internal/model"
	"github.com/minio/minio-go/v7"
)

// Credentials - connection settings of one alias from the credential file
type Credentials struct {
	Endpoint     string // host[:port] без схемы
	Secure       bool
	AccessKey    string
	SecretKey    string
	SessionToken string
	BucketLookup minio.BucketLookupType
}

// credentialFile follows the MinIO client config layout:
// {"version":"10","aliases":{"<alias>":{"url":...,"accessKey":...,"secretKey":...,"api":...,"path":...}}}
type credentialFile struct {
	Version string                     `json:"version"`
	Aliases map[string]credentialAlias `json:"aliases"`
}

type credentialAlias struct {
	URL          string `json:"url"`
	AccessKey    string `json:"accessKey"`
	SecretKey    string `json:"secretKey"`
	SessionToken string `json:"sessionToken"`
	API          string `json:"api"`
	Path         string `json:"path"`
}

// LoadCredentials reads the credential file and picks alias from it
func LoadCredentials(path, alias string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: %w", model.ErrBadCredentials, err)
	}

	var file credentialFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Credentials{}, fmt.Errorf("%w: failed to unmarshal %q: %w", model.ErrBadCredentials, path, err)
	}

	a, ok := file.Aliases[alias]
	if !ok {
		return Credentials{}, fmt.Errorf("%w: alias %q not found in %q", model.ErrBadCredentials, alias, path)
	}
	if a.AccessKey == "" || a.SecretKey == "" {
		return Credentials{}, fmt.Errorf("%w: alias %q has empty keys", model.ErrBadCredentials, alias)
	}

	u, err := url.Parse(a.URL)
	if err != nil || u.Host == "" {
		return Credentials{}, fmt.Errorf("%w: alias %q has incorrect url %q", model.ErrBadCredentials, alias, a.URL)
	}

	var secure bool
	switch strings.ToLower(u.Scheme) {
	case "https":
		secure = true
	case "http":
	default:
		return Credentials{}, fmt.Errorf("%w: unsupported url scheme %q", model.ErrBadCredentials, u.Scheme)
	}

	return Credentials{
		Endpoint:     u.Host,
		Secure:       secure,
		AccessKey:    a.AccessKey,
		SecretKey:    a.SecretKey,
		SessionToken: a.SessionToken,
		BucketLookup: bucketLookup(a.Path),
	}, nil
}

func bucketLookup(path string) minio.BucketLookupType {
	switch strings.ToLower(path) {
	case "dns", "off":
		return minio.BucketLookupDNS
	case "path", "on":
		return minio.BucketLookupPath
	default:
		return minio.BucketLookupAuto
	}
}
