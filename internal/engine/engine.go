package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/re-cinq/saberlint/internal/check"
	"github.com/re-cinq/saberlint/internal/config"
	"github.com/re-cinq/saberlint/internal/fileutil"
	"github.com/re-cinq/saberlint/internal/hardware"
	"github.com/re-cinq/saberlint/internal/profile"
	"github.com/re-cinq/saberlint/internal/sequencer"
)

// Role identifies which of the three configuration files a result is for.
type Role string

const (
	RoleSequencer Role = "sequencer"
	RoleHardware  Role = "hardware"
	RoleProfiles  Role = "profiles"
)

// FileResult is the outcome of validating one file. Err is set when the file
// could not be read or parsed (a *dialect.ParseError); Report is nil then.
type FileResult struct {
	Role    Role
	Path    string
	Missing bool
	Report  *check.Report
	Err     error
}

// Result is the outcome of one Run.
type Result struct {
	Dir        string
	Files      []*FileResult
	LedCount   int
	AuxEffects []string
}

// Run validates the sequencer, hardware and profiles files of dir, in that
// order, feeding the auxiliary effect names and the LED count forward.
// Individual file failures are logged and recorded, and never stop the
// remaining files.
func Run(cfg *config.Config, dir string) *Result {
	res := &Result{Dir: dir, LedCount: cfg.Defaults.LedCount}

	seq := res.add(RoleSequencer, cfg.Files.Sequencer)
	if text, ok := read(seq); ok {
		names, rep, err := sequencer.ValidateFile(text)
		seq.Report, seq.Err = rep, err
		if err != nil {
			fileutil.LogError("Error: %s: %s", seq.Path, err)
		} else {
			res.AuxEffects = names
		}
	} else if seq.Missing {
		fileutil.LogWarn("%s is absent, no auxiliary effects are known", seq.Path)
	}

	hw := res.add(RoleHardware, cfg.Files.Hardware)
	if text, ok := read(hw); ok {
		ledCount, rep, err := hardware.ValidateFile(text)
		hw.Report, hw.Err = rep, err
		if err != nil {
			fileutil.LogError("Error: %s: %s", hw.Path, err)
			fileutil.LogWarn("cannot check %s properly, default LED count (%d) is used", hw.Path, res.LedCount)
		} else {
			res.LedCount = ledCount
		}
	} else if hw.Missing {
		fileutil.LogWarn("%s is absent, default LED count (%d) is used", hw.Path, res.LedCount)
	}

	prof := res.add(RoleProfiles, cfg.Files.Profiles)
	if text, ok := read(prof); ok {
		rep, err := profile.ValidateFile(text, res.LedCount, res.AuxEffects)
		prof.Report, prof.Err = rep, err
		if err != nil {
			fileutil.LogError("Error: %s: %s", prof.Path, err)
		}
	} else if prof.Missing {
		fileutil.LogWarn("%s is absent", prof.Path)
	}

	return res
}

// Single validates one file on its own. ledCount and auxEffects are used only
// for the profiles file.
func Single(role Role, path string, ledCount int, auxEffects []string) (*FileResult, error) {
	f := &FileResult{Role: role, Path: path}
	text, ok := read(f)
	if f.Missing {
		return nil, fmt.Errorf("%s: %w", path, os.ErrNotExist)
	}
	if !ok {
		return f, nil
	}
	switch role {
	case RoleSequencer:
		_, f.Report, f.Err = sequencer.ValidateFile(text)
	case RoleHardware:
		_, f.Report, f.Err = hardware.ValidateFile(text)
	case RoleProfiles:
		f.Report, f.Err = profile.ValidateFile(text, ledCount, auxEffects)
	default:
		return nil, fmt.Errorf("unknown file kind %q", role)
	}
	return f, nil
}

// Roles lists the file kinds in validation order.
func Roles() []Role {
	return []Role{RoleSequencer, RoleHardware, RoleProfiles}
}

func (r *Result) add(role Role, name string) *FileResult {
	f := &FileResult{Role: role, Path: filepath.Join(r.Dir, name)}
	r.Files = append(r.Files, f)
	return f
}

// read loads a file. A missing file is flagged on f; other read errors are
// recorded in f.Err.
func read(f *FileResult) (string, bool) {
	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		f.Missing = true
		return "", false
	}
	if err != nil {
		f.Err = fmt.Errorf("reading %s: %w", f.Path, err)
		fileutil.LogError("Error: %s", f.Err)
		return "", false
	}
	fileutil.LogInfo("checking %s...", f.Path)
	return string(data), true
}

// File returns the result for role, or nil.
func (r *Result) File(role Role) *FileResult {
	for _, f := range r.Files {
		if f.Role == role {
			return f
		}
	}
	return nil
}

// Failed reports whether the file could not be validated at all.
func (f *FileResult) Failed() bool {
	return f.Err != nil
}

// HasErrors reports whether the file failed or has error findings; with
// strict, warnings count as well.
func (f *FileResult) HasErrors(strict bool) bool {
	if f.Err != nil {
		return true
	}
	if f.Report == nil {
		return false
	}
	if f.Report.HasErrors() {
		return true
	}
	return strict && f.Report.Count(check.SeverityWarning) > 0
}

// HasErrors decides the exit status of a run. Missing files are not errors.
func (r *Result) HasErrors(strict bool) bool {
	for _, f := range r.Files {
		if f.HasErrors(strict) {
			return true
		}
	}
	return false
}

// Counts returns the total number of errors and warnings of the run.
func (r *Result) Counts() (errors, warnings int) {
	return Count(r.Files)
}

// Count totals the errors and warnings of files, counting every failed file
// as one error.
func Count(files []*FileResult) (errors, warnings int) {
	for _, f := range files {
		if f.Failed() {
			errors++
		}
		if f.Report != nil {
			errors += f.Report.Count(check.SeverityError)
			warnings += f.Report.Count(check.SeverityWarning)
		}
	}
	return errors, warnings
}
