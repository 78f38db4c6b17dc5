package app

import (
	"errors"
	"strings"
	"time"

	"github.com/Cyclone1070/bioview/internal/tool/backup"
	"github.com/Cyclone1070/bioview/internal/tool/charset"
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/Cyclone1070/bioview/internal/tool/scan"
)

// Action names.
const (
	ActionLoadReadme    = "load_readme"
	ActionSaveReadme    = "save_readme"
	ActionCreateReadme  = "create_readme"
	ActionScanReadmes   = "scan_readmes"
	ActionListReadmes   = "list_readmes"
	ActionListBackups   = "list_backups"
	ActionSearchReadmes = "search_readmes"
	ActionCheckModified = "check_modified"
)

// -- Load --

type LoadReadmeRequest struct {
	Path string `mapstructure:"path"`
}

func (r *LoadReadmeRequest) Validate() error {
	if strings.TrimSpace(r.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

type LoadReadmeResponse struct {
	Path        string
	Text        string
	Encoding    charset.Encoding
	DecodedWith string
	Fallback    bool
}

// -- Save --

type SaveReadmeRequest struct {
	Path string `mapstructure:"path"`
	Text string `mapstructure:"text"`
}

func (r *SaveReadmeRequest) Validate() error {
	if strings.TrimSpace(r.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

type SaveReadmeResponse struct {
	Path    string
	Rotated bool
	Bytes   int
}

// -- Create --

// CreateReadmeRequest names the new file either by Path or by Dir plus an
// optional Name (files.readme_name when empty).
type CreateReadmeRequest struct {
	Path      string `mapstructure:"path"`
	Dir       string `mapstructure:"dir"`
	Name      string `mapstructure:"name"`
	Policy    string `mapstructure:"policy"`
	Overwrite bool   `mapstructure:"overwrite"`

	policy readme.Policy
}

func (r *CreateReadmeRequest) Validate() error {
	if strings.TrimSpace(r.Path) == "" && strings.TrimSpace(r.Dir) == "" {
		return ErrPathRequired
	}
	if r.Path != "" && r.Dir != "" {
		return errors.New("give either path or dir, not both")
	}
	if r.Policy == "" {
		r.Policy = readme.Empty.String()
	}
	p, err := readme.ParsePolicy(r.Policy)
	if err != nil {
		return err
	}
	r.policy = p
	return nil
}

type CreateReadmeResponse struct {
	Path   string
	Policy readme.Policy
}

// -- Scan --

// ScanReadmesRequest scans Root, or the saved work folder when Root is empty.
// With Async set the scan runs in the background and ends with a scan_done event.
type ScanReadmesRequest struct {
	Root  string `mapstructure:"root"`
	Async bool   `mapstructure:"async"`
}

type ScanReadmesResponse struct {
	Root     string
	Files    []string
	Started  bool
	Duration time.Duration
}

// -- List --

type ListReadmesRequest struct{}

type ListReadmesResponse struct {
	ListFile string
	Files    []string
}

// -- Backups --

type ListBackupsRequest struct {
	Path string `mapstructure:"path"`
}

func (r *ListBackupsRequest) Validate() error {
	if strings.TrimSpace(r.Path) == "" {
		return ErrPathRequired
	}
	return nil
}

type ListBackupsResponse struct {
	Path    string
	Members []backup.Member
}

// -- Search --

// SearchReadmesRequest searches Files, or the known readme list when empty.
// Offset and Limit page through the matches; a zero Limit returns them all.
type SearchReadmesRequest struct {
	Terms  []string `mapstructure:"terms"`
	Files  []string `mapstructure:"files"`
	Offset int      `mapstructure:"offset"`
	Limit  int      `mapstructure:"limit"`
}

func (r *SearchReadmesRequest) Validate() error {
	if r.Offset < 0 || r.Limit < 0 {
		return ErrInvalidPage
	}
	for _, t := range r.Terms {
		if strings.TrimSpace(t) != "" {
			return nil
		}
	}
	return scan.ErrTermsRequired
}

type SearchReadmesResponse struct {
	Matches   []scan.Match
	Skipped   []string
	Total     int
	Truncated bool
}

// -- Modified --

type CheckModifiedRequest struct {
	Path string `mapstructure:"path"`
	Text string `mapstructure:"text"`
}

type CheckModifiedResponse struct {
	Modified bool
}
