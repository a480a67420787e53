package postprocess

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/handiism/ccvtac/internal/audio"
	"github.com/handiism/ccvtac/internal/bundle"
	"github.com/handiism/ccvtac/internal/config"
	ioutils "github.com/handiism/ccvtac/internal/io"
	"github.com/handiism/ccvtac/internal/model"
	"github.com/handiism/ccvtac/internal/tagging"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a processing progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// TagWriter writes a tag record into one audio file.
type TagWriter interface {
	WriteTags(ctx context.Context, path string, rec model.TagRecord, artwork []byte) error
}

// Mover moves a bundle's audio files to their destination and returns the
// new paths of the files that moved.
type Mover interface {
	Move(ctx context.Context, rec model.TagRecord, paths []string) ([]string, error)
}

// DocumentLoader reads the info document of a bundle.
type DocumentLoader interface {
	Load(path string) (*model.Document, error)
}

// DocumentLoaderFunc adapts a function to DocumentLoader.
type DocumentLoaderFunc func(path string) (*model.Document, error)

// Load calls f(path).
func (f DocumentLoaderFunc) Load(path string) (*model.Document, error) {
	return f(path)
}

// ArtworkPreparer turns a thumbnail into embeddable cover art.
type ArtworkPreparer interface {
	PrepareArtwork(ctx context.Context, data []byte, maxSize int) ([]byte, error)
}

// Collaborators are the pipeline's external dependencies.
type Collaborators struct {
	Tags      TagWriter
	Mover     Mover
	Documents DocumentLoader
	Artwork   ArtworkPreparer
}

// DefaultCollaborators wires the file-based implementations for settings.
func DefaultCollaborators(settings *config.Settings) Collaborators {
	return Collaborators{
		Tags:      audio.NewTagger(settings.ToTagConfig()),
		Mover:     ioutils.NewMover(settings.ToPathConfig()),
		Documents: DocumentLoaderFunc(model.LoadDocument),
		Artwork:   ioutils.NewImageService(),
	}
}

// Pipeline tags and moves the bundles of a download directory.
type Pipeline struct {
	settings *config.Settings
	grouper  *bundle.Grouper
	collab   Collaborators
	now      func() time.Time

	totalBundles     int32
	processedBundles int32
	failedBundles    int32

	onProgress func(ProgressEvent)
}

// New creates a Pipeline. onProgress may be nil.
func New(settings *config.Settings, collab Collaborators, onProgress func(ProgressEvent)) *Pipeline {
	return &Pipeline{
		settings:   settings,
		grouper:    bundle.NewGrouper(settings.ToExtensions()),
		collab:     collab,
		now:        time.Now,
		onProgress: onProgress,
	}
}

// RunDirectory processes the files currently in the working directory.
func (p *Pipeline) RunDirectory(ctx context.Context) (*Report, error) {
	files, err := bundle.ListFiles(p.settings.WorkingDirectory)
	if err != nil {
		return nil, err
	}
	return p.Run(ctx, files)
}

// Run groups paths into bundles and processes each one.
//
// A failing bundle does not stop the others. The returned error is the
// report's Err, or the context error when the run was cancelled.
func (p *Pipeline) Run(ctx context.Context, paths []string) (*Report, error) {
	bundles, rejected := p.grouper.Group(paths)

	report := &Report{Bundles: len(bundles), Rejected: rejected}
	for _, r := range rejected {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Skipping %s", r), Level: LevelWarning})
	}

	atomic.StoreInt32(&p.totalBundles, int32(len(bundles)))
	atomic.StoreInt32(&p.processedBundles, 0)
	atomic.StoreInt32(&p.failedBundles, 0)

	if len(bundles) == 0 {
		p.progress(ProgressEvent{Message: "No bundles to process", Level: LevelInfo})
		return report, ctx.Err()
	}
	p.progress(ProgressEvent{Message: fmt.Sprintf("Processing %d bundle(s)", len(bundles)), Level: LevelInfo})

	var results collector

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(p.settings.MaxConcurrentBundles, 1))

	for _, b := range bundles {
		b := b
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			if err := p.processBundle(gctx, b, &results); err != nil {
				atomic.AddInt32(&p.failedBundles, 1)
				results.fail(err)
				p.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
			}
			atomic.AddInt32(&p.processedBundles, 1)
			return nil // Continue with other bundles
		})
	}

	// Workers never return errors.
	_ = g.Wait()

	results.fill(report)

	if p.settings.CreatePlaylist {
		p.writePlaylist(ctx, &results, report)
	}

	if ctx.Err() != nil {
		return report, ctx.Err()
	}
	if err := report.Err(); err != nil {
		p.progress(ProgressEvent{Message: report.Summary(), Level: LevelWarning})
		return report, err
	}
	p.progress(ProgressEvent{Message: report.Summary(), Level: LevelSuccess})
	return report, nil
}

// GetProgress returns current processing progress.
func (p *Pipeline) GetProgress() (processed, failed, total int32) {
	return atomic.LoadInt32(&p.processedBundles),
		atomic.LoadInt32(&p.failedBundles),
		atomic.LoadInt32(&p.totalBundles)
}

// processBundle runs every step for b. A panic in a collaborator is
// reported as a failure of the step that was running.
func (p *Pipeline) processBundle(ctx context.Context, b model.Bundle, results *collector) (failure *BundleError) {
	stage := StageMetadata
	fail := func(at Stage, err error) *BundleError {
		return &BundleError{ResourceKey: b.ResourceKey, Stage: at, Err: err}
	}
	defer func() {
		if r := recover(); r != nil {
			failure = fail(stage, fmt.Errorf("panic: %v", r))
		}
	}()

	p.progress(ProgressEvent{Message: fmt.Sprintf("Processing %s (%d audio file(s))", b.ResourceKey, len(b.AudioPaths)), Level: LevelInfo})

	doc, err := p.collab.Documents.Load(b.MetadataPath)
	if err != nil {
		return fail(StageMetadata, err)
	}
	if doc == nil {
		doc = &model.Document{}
	}

	assembler := tagging.NewAssembler(tagging.Options{
		Report: func(line string) {
			p.progress(ProgressEvent{Message: line, Level: LevelVerbose})
		},
		UploadYearFallback: p.settings.UploadYearFallback,
	})
	rec := assembler.Assemble(b, doc)

	var artwork []byte
	if p.settings.EmbedImages {
		stage = StageArtwork
		if artwork, err = p.prepareArtwork(ctx, b.ImagePath); err != nil {
			return fail(StageArtwork, err)
		}
	}

	stage = StageTagging
	for _, path := range b.AudioPaths {
		if err := p.collab.Tags.WriteTags(ctx, path, rec, artwork); err != nil {
			return fail(StageTagging, err)
		}
		p.progress(ProgressEvent{Message: fmt.Sprintf("Tagged %s", filepath.Base(path)), Level: LevelVerbose})
	}

	stage = StageMoving
	moved, err := p.collab.Mover.Move(ctx, rec, b.Audio())
	results.move(moved, playlistEntries(moved, rec, doc))
	for _, dst := range moved {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Moved %q", dst), Level: LevelVerbose})
	}
	if err != nil {
		return fail(StageMoving, err)
	}

	if !p.settings.KeepSidecarFiles {
		stage = StageCleanup
		n, err := ioutils.RemoveFiles(b.Sidecars()...)
		if err != nil {
			return fail(StageCleanup, err)
		}
		p.progress(ProgressEvent{Message: fmt.Sprintf("Deleted %d sidecar file(s) for %s", n, b.ResourceKey), Level: LevelVerbose})
	}

	results.succeed(doc.PlaylistTitle)
	p.progress(ProgressEvent{Message: fmt.Sprintf("Finished %s: %s", b.ResourceKey, describe(rec)), Level: LevelSuccess})
	return nil
}

func (p *Pipeline) prepareArtwork(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if p.collab.Artwork == nil {
		return data, nil
	}
	return p.collab.Artwork.PrepareArtwork(ctx, data, p.settings.ArtworkSize())
}

func (p *Pipeline) writePlaylist(ctx context.Context, results *collector, report *Report) {
	entries := results.playlistEntries()
	if len(entries) == 0 {
		return
	}

	name := results.playlistTitle()
	if name == "" {
		name = "ccvtac"
	}

	paths := p.settings.ToPathConfig()
	path := paths.PlaylistPath(name, p.now().Format("2006-01-02"))
	creator := audio.NewPlaylistCreator(paths.PlaylistFormat, p.settings.M3UExtended)
	content := creator.CreatePlaylist(name, filepath.Dir(path), entries)

	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	if err := ioutils.WriteFile(ctx, path, []byte(content)); err != nil {
		p.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}

	report.PlaylistPath = path
	p.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist %s", path), Level: LevelSuccess})
}

// playlistEntries describes moved files. The document's duration is only
// used when the bundle holds a single file; chapters have their own lengths.
func playlistEntries(moved []string, rec model.TagRecord, doc *model.Document) []audio.PlaylistEntry {
	duration := 0.0
	if len(moved) == 1 {
		duration = doc.Duration
	}
	entries := make([]audio.PlaylistEntry, 0, len(moved))
	for _, dst := range moved {
		entries = append(entries, audio.NewPlaylistEntry(dst, rec, duration))
	}
	return entries
}

func describe(rec model.TagRecord) string {
	s := rec.Title.String()
	if artist := rec.Artist.String(); artist != "" {
		s = artist + " - " + s
	}
	if rec.Year.Present {
		s += fmt.Sprintf(" (%d)", rec.Year.Value)
	}
	return s
}

func (p *Pipeline) progress(event ProgressEvent) {
	if p.onProgress != nil {
		p.onProgress(event)
	}
}
