package ioexport

import (
	"fmt"
	"runtime"

	"github.com/aladaia/vocan/pkg/errcode"
	"github.com/gnames/gn"
)

// StageError is returned when artifacts cannot be written to the staging
// directory. The previous output directory is left untouched.
func StageError(path string, err error) error {
	msg := "Cannot write artifact <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportStageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot stage %s: %w", fn.Name(), path, err),
	}
}

// CommitError is returned when staged artifacts cannot replace the output
// directory.
func CommitError(dir string, err error) error {
	msg := "Cannot replace output directory <em>%s</em>"
	vars := []any{dir}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportCommitError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot commit %s: %w", fn.Name(), dir, err),
	}
}

// LoadError is returned when an artifact cannot be read back.
func LoadError(path string, err error) error {
	msg := `Cannot load artifact <em>%s</em>

Run <em>vocan analyze</em> to produce artifacts first.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArtifactLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot load %s: %w", fn.Name(), path, err),
	}
}

// VersionError is returned for artifacts written in an unsupported
// layout.
func VersionError(path, version, minVersion string) error {
	msg := `Artifacts in <em>%s</em> have format version '%s', at least '%s' is required

Run <em>vocan analyze</em> again to regenerate them.`
	vars := []any{path, version, minVersion}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ArtifactLoadError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unsupported format version %q",
			fn.Name(), version),
	}
}

// ForeignDirError is returned when the output directory holds files that
// were not written by vocan. Such a directory is never replaced.
func ForeignDirError(dir string) error {
	msg := `Output directory <em>%s</em> is not empty and has no <em>%s</em>

Choose an empty or new directory with <em>--out</em>.`
	vars := []any{dir, ManifestFile}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportOutputDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: refusing to replace foreign directory %s", fn.Name(), dir),
	}
}

// ProtectedPathError is returned when an input file lies inside the output
// directory.
func ProtectedPathError(dir, path string) error {
	msg := "Output directory <em>%s</em> contains input file <em>%s</em>"
	vars := []any{dir, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportOutputDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s is inside %s", fn.Name(), path, dir),
	}
}
