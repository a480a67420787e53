// Package postprocess runs the post-download pipeline: it groups the files
// of the working directory into bundles and, for every bundle, detects tags,
// writes them into the audio files and moves the files into the library.
//
// # Pipeline
//
// For each bundle the Pipeline:
//
//  1. Loads the info JSON document
//  2. Assembles the tag record (see package tagging)
//  3. Prepares the thumbnail as cover art, if enabled
//  4. Writes tags to every audio file
//  5. Moves the audio files to the destination
//  6. Deletes the JSON and image sidecars, unless KeepSidecarFiles is set
//
// Bundles run concurrently up to MaxConcurrentBundles. A failure stops only
// the bundle it happened in; it is recorded as a BundleError and the batch
// continues. Nothing is retried.
//
// # Basic Usage
//
//	p := postprocess.New(settings, postprocess.DefaultCollaborators(settings),
//	    func(event postprocess.ProgressEvent) {
//	        fmt.Println(event.Message)
//	    })
//
//	report, err := p.RunDirectory(ctx)
//	if errors.Is(err, postprocess.ErrPartialFailure) {
//	    for _, f := range report.Failures {
//	        log.Printf("%s failed while %s: %v", f.ResourceKey, f.Stage, f.Err)
//	    }
//	}
//
// # Progress Tracking
//
// Progress is reported via a callback function that receives ProgressEvent:
//
//	type ProgressEvent struct {
//	    Message string
//	    Level   ProgressLevel // Info, Verbose, Warning, Error, Success
//	}
//
// GetProgress returns bundle counters for polling front-ends.
//
// # Collaborators
//
// Tag writing, moving, document loading and artwork preparation are
// interfaces so they can be replaced in tests. DefaultCollaborators wires
// audio.Tagger, ioutils.Mover, model.LoadDocument and ioutils.ImageService.
package postprocess
