package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/apiformats/clientgen/internal/view"
)

// Options controls how rendered client source is written out.
type Options struct {
	OutDir string // required unless DryRun; target directory
	Target Target
	// Multiple partitions the output by each method's destination tag,
	// one file per destination.
	Multiple bool
	Force    bool // overwrite existing files
	DryRun   bool // don't write, only plan
}

// PlannedFile describes a file the writer intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result returns the planned files and the rendered content keyed by
// relative path.
type Result struct {
	Planned []PlannedFile
	Files   map[string][]byte
}

// Emit renders the view model and writes the result under OutDir. With
// Multiple set, the model is split per destination first and each group
// renders to its own file.
func Emit(ctx context.Context, vm *view.ViewModel, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if vm == nil {
		return nil, fmt.Errorf("render: nil view model")
	}
	if !opts.DryRun && strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("render: OutDir is required")
	}

	files := map[string][]byte{}
	if opts.Multiple {
		groups := Split(vm)
		for name, group := range groups {
			text, err := Render(group, opts.Target)
			if err != nil {
				return nil, err
			}
			files[name+opts.Target.Extension()] = []byte(text)
		}
	} else {
		text, err := Render(vm, opts.Target)
		if err != nil {
			return nil, err
		}
		files[fileBaseName(vm.ClassName)+opts.Target.Extension()] = []byte(text)
	}

	// Plan in deterministic order
	rels := make([]string, 0, len(files))
	for p := range files {
		rels = append(rels, filepath.ToSlash(p))
	}
	sort.Strings(rels)

	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		// Re-check before touching the filesystem.
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}

	return &Result{Planned: planned, Files: files}, nil
}

// Split partitions a view model by method destination. Methods without a
// destination land in the default group named after the class. Definitions
// and security flags are replicated into every group so each file is
// self-contained.
func Split(vm *view.ViewModel) map[string]*view.ViewModel {
	groups := map[string]*view.ViewModel{}
	for _, m := range vm.Methods {
		name := m.Destination
		if name == "" {
			name = fileBaseName(vm.ClassName)
		} else {
			name = fileBaseName(name)
		}
		group, ok := groups[name]
		if !ok {
			clone := *vm
			clone.Methods = nil
			group = &clone
			groups[name] = group
		}
		group.Methods = append(group.Methods, m)
	}
	if len(groups) == 0 {
		clone := *vm
		groups[fileBaseName(vm.ClassName)] = &clone
	}
	return groups
}

// fileBaseName folds a class or destination name into a safe file name:
// lower-cased, spaces and slashes dashed, anything else non-alphanumeric
// dropped.
func fileBaseName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "/", "-")
	b := strings.Builder{}
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "client"
	}
	return out
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	// Pre-flight: if directory exists and not empty and not force, error.
	if st, err := os.Stat(abs); err == nil && st.IsDir() && !force {
		entries, rerr := os.ReadDir(abs)
		if rerr == nil && len(entries) > 0 {
			return fmt.Errorf("render: output directory %q is not empty (use --force to overwrite)", abs)
		}
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
		// atomic write via temp file + rename
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
