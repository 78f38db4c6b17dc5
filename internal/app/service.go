package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"github.com/Cyclone1070/bioview/internal/config"
	"github.com/Cyclone1070/bioview/internal/tool/backup"
	"github.com/Cyclone1070/bioview/internal/tool/file"
	"github.com/Cyclone1070/bioview/internal/tool/paginationutil"
	"github.com/Cyclone1070/bioview/internal/tool/readme"
	"github.com/Cyclone1070/bioview/internal/tool/scan"
)

// textLoader loads readme text.
type textLoader interface {
	Load(path string) (*file.LoadResult, error)
	LoadText(path string) (string, error)
}

// backupSaver saves with backup rotation.
type backupSaver interface {
	Save(path, text string) (*backup.SaveResult, error)
	Chain(path string) ([]backup.Member, error)
}

// readmeCreator creates readme files.
type readmeCreator interface {
	Create(req readme.CreateRequest, list readme.ListingFunc, tmpl readme.TemplateFunc) (string, error)
	OnCreated(fn func(path string))
}

// readmeScanner finds readme files.
type readmeScanner interface {
	Scan(ctx context.Context, root string) ([]string, error)
	ScanAsync(ctx context.Context, root string, done func(scan.Result)) <-chan scan.Result
}

// fileSystem is what the service itself needs for listings and the list file.
type fileSystem interface {
	ListDir(path string) ([]os.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	EnsureDirs(path string) error
	WriteFileAtomic(path string, content []byte, perm os.FileMode) error
}

// contentTracker remembers what is on disk to flag unsaved edits.
type contentTracker interface {
	Record(path, text string)
	Modified(path, text string) bool
}

// Deps groups the collaborators of a Service.
type Deps struct {
	Config  *config.Config
	State   *config.State
	FS      fileSystem
	Loader  textLoader
	Rotator backupSaver
	Creator readmeCreator
	Scanner readmeScanner
	Tracker contentTracker
	Logger  *slog.Logger
}

// Service implements the actions over the readme tools.
type Service struct {
	Deps
	dispatcher *Dispatcher
}

// NewService creates the service, registers its actions on d and routes
// creation notices to d's event channel.
func NewService(deps Deps, d *Dispatcher) (*Service, error) {
	s := &Service{Deps: deps, dispatcher: d}

	s.Creator.OnCreated(func(path string) {
		d.Emit(Event{Kind: EventFileCreated, Path: path})
	})

	err := d.Register(
		NewBaseAction(ActionLoadReadme, "Load and decode a readme file", s.loadReadme),
		NewBaseAction(ActionSaveReadme, "Save a readme file, rotating dated backups", s.saveReadme),
		NewBaseAction(ActionCreateReadme, "Create a readme file from a content policy", s.createReadme),
		NewBaseAction(ActionScanReadmes, "Scan a folder for readme files and store the list", s.scanReadmes),
		NewBaseAction(ActionListReadmes, "List known readme files", s.listReadmes),
		NewBaseAction(ActionListBackups, "List the backups of a readme file", s.listBackups),
		NewBaseAction(ActionSearchReadmes, "Find readme files containing all terms", s.searchReadmes),
		NewBaseAction(ActionCheckModified, "Report whether text differs from the saved file", s.checkModified),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// absPath makes p absolute so stored paths stay valid from any working
// directory. p is returned unchanged when the working directory is unknown.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func (s *Service) loadReadme(_ context.Context, req LoadReadmeRequest) (*LoadReadmeResponse, error) {
	path := absPath(req.Path)
	res, err := s.Loader.Load(path)
	if err != nil {
		return nil, err
	}

	s.Tracker.Record(path, res.Text)
	if err := s.State.AddToMRU(path); err != nil {
		s.Logger.Warn("failed to update recent files", "error", err)
	}

	return &LoadReadmeResponse{
		Path:        res.Path,
		Text:        res.Text,
		Encoding:    res.Encoding,
		DecodedWith: res.DecodedWith,
		Fallback:    res.Fallback,
	}, nil
}

func (s *Service) saveReadme(_ context.Context, req SaveReadmeRequest) (*SaveReadmeResponse, error) {
	path := absPath(req.Path)
	res, err := s.Rotator.Save(path, req.Text)
	if err != nil {
		return nil, err
	}

	s.Tracker.Record(path, req.Text)
	s.dispatcher.Emit(Event{Kind: EventFileSaved, Path: path})

	return &SaveReadmeResponse{Path: res.Path, Rotated: res.Rotated, Bytes: res.Bytes}, nil
}

func (s *Service) createReadme(_ context.Context, req CreateReadmeRequest) (*CreateReadmeResponse, error) {
	path := req.Path
	if path == "" {
		name := req.Name
		if name == "" {
			name = s.Config.Files.ReadmeName
		}
		path = filepath.Join(req.Dir, name)
	}
	path = absPath(path)

	created, err := s.Creator.Create(
		readme.CreateRequest{Path: path, Policy: req.policy, Overwrite: req.Overwrite},
		readme.DirListing(s.FS),
		s.templateSource().Func(),
	)
	if err != nil {
		return nil, err
	}

	s.rememberInList(created)
	return &CreateReadmeResponse{Path: created, Policy: req.policy}, nil
}

// templateSource picks the template selected in the workspace state, falling
// back to the configured one.
func (s *Service) templateSource() *readme.TemplateSource {
	name := s.Config.Files.ActiveTemplate
	if active := s.State.ActiveTemplate(); active != "" {
		name = active
	}
	return readme.NewTemplateSource(s.Loader, s.Config.Files.TemplateDir, name)
}

// rememberInList adds a newly created readme to the list file so it shows
// up without a rescan.
func (s *Service) rememberInList(path string) {
	files, err := scan.LoadList(s.FS, s.Config.Files.ListFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		s.Logger.Warn("readme list unreadable, not updated", "error", err)
		return
	}
	if slices.Contains(files, path) {
		return
	}
	files = append(files, path)
	sort.Strings(files)
	if err := scan.WriteList(s.FS, s.Config.Files.ListFile, files); err != nil {
		s.Logger.Warn("failed to update readme list", "error", err)
	}
}

func (s *Service) scanReadmes(ctx context.Context, req ScanReadmesRequest) (*ScanReadmesResponse, error) {
	root := req.Root
	if root == "" {
		root = s.State.WorkFolder()
	}
	if root == "" {
		return nil, ErrNoWorkFolder
	}
	root = absPath(root)

	if req.Async {
		s.Scanner.ScanAsync(context.WithoutCancel(ctx), root, func(r scan.Result) {
			if r.Err == nil {
				r.Err = s.storeScan(r.Root, r.Files)
			}
			s.dispatcher.Emit(Event{Kind: EventScanDone, Path: r.Root, Files: r.Files, Err: r.Err})
		})
		return &ScanReadmesResponse{Root: root, Started: true}, nil
	}

	start := time.Now()
	files, err := s.Scanner.Scan(ctx, root)
	if err != nil {
		return nil, err
	}
	if err := s.storeScan(root, files); err != nil {
		return nil, err
	}
	return &ScanReadmesResponse{Root: root, Files: files, Duration: time.Since(start)}, nil
}

// storeScan writes the list file and remembers the scanned folder.
func (s *Service) storeScan(root string, files []string) error {
	if err := scan.WriteList(s.FS, s.Config.Files.ListFile, files); err != nil {
		return err
	}
	if err := s.State.SetWorkFolder(root); err != nil {
		s.Logger.Warn("failed to save work folder", "error", err)
	}
	s.Logger.Info("readme list updated", "root", root, "files", len(files))
	return nil
}

func (s *Service) listReadmes(_ context.Context, _ ListReadmesRequest) (*ListReadmesResponse, error) {
	files, err := scan.LoadList(s.FS, s.Config.Files.ListFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return &ListReadmesResponse{ListFile: s.Config.Files.ListFile, Files: files}, nil
}

func (s *Service) listBackups(_ context.Context, req ListBackupsRequest) (*ListBackupsResponse, error) {
	members, err := s.Rotator.Chain(req.Path)
	if err != nil {
		return nil, err
	}
	return &ListBackupsResponse{Path: req.Path, Members: members}, nil
}

func (s *Service) searchReadmes(ctx context.Context, req SearchReadmesRequest) (*SearchReadmesResponse, error) {
	files := req.Files
	if len(files) == 0 {
		listed, err := scan.LoadList(s.FS, s.Config.Files.ListFile)
		if err != nil {
			return nil, err
		}
		files = listed
	}

	res, err := scan.Search(ctx, s.Loader, files, req.Terms)
	if err != nil {
		return nil, err
	}
	matches, page := paginationutil.Apply(res.Matches, req.Offset, req.Limit)
	return &SearchReadmesResponse{
		Matches:   matches,
		Skipped:   res.Skipped,
		Total:     page.Total,
		Truncated: page.Truncated,
	}, nil
}

func (s *Service) checkModified(_ context.Context, req CheckModifiedRequest) (*CheckModifiedResponse, error) {
	return &CheckModifiedResponse{Modified: s.Tracker.Modified(absPath(req.Path), req.Text)}, nil
}
