package template

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bsp-cli/bsp/pkg/errors"
	"github.com/bsp-cli/bsp/pkg/logging"
)

// CopyTree recursively copies the template tree from src to dst,
// skipping any entry whose name is in the ignore set at any depth.
// Existing destination files are overwritten. Symlinks are copied as
// links so templates can ship relative links.
func CopyTree(src, dst string, ignore map[string]bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrTemplateNotFound, "template directory does not exist: %s", src)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrInvalidInput, "template path is not a directory: %s", src)
	}

	if dstInfo, err := os.Stat(dst); err == nil && !dstInfo.IsDir() {
		return errors.Newf(errors.ErrTargetConflict, "project location exists but is not a directory: %s", dst)
	}

	if err := copyDir(src, dst, ignore); err != nil {
		return err
	}

	logger := logging.GetLogger("template.copy")
	logger.Debug().
		Str("src", src).
		Str("dst", dst).
		Msg("template copied")
	return nil
}

func copyDir(src, dst string, ignore map[string]bool) error {
	if err := os.MkdirAll(dst, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", dst)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot read directory %s", src)
	}

	for _, entry := range entries {
		if ignore[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.Type()&os.ModeSymlink != 0:
			if err := copySymlink(srcPath, dstPath); err != nil {
				return err
			}
		case entry.IsDir():
			if err := copyDir(srcPath, dstPath, ignore); err != nil {
				return err
			}
		default:
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot open %s", src)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot stat %s", src)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot create %s", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot copy %s", src)
	}

	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot finish writing %s", dst)
	}
	return nil
}

func copySymlink(src, dst string) error {
	target, err := os.Readlink(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot read symlink %s", src)
	}
	if err := os.Remove(dst); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot replace %s", dst)
	}
	if err := os.Symlink(target, dst); err != nil {
		return errors.Wrapf(err, errors.ErrCopyFailed, "cannot create symlink %s", dst)
	}
	return nil
}

// RenameSrcDir renames src/<templateName> to src/<projectName> inside
// the freshly copied project. A missing source subtree is fatal; the
// error lists whatever directories src/ does contain to help diagnose
// templates with a different layout.
func RenameSrcDir(projectDir, templateName, projectName string) error {
	oldPath := filepath.Join(projectDir, "src", templateName)
	newPath := filepath.Join(projectDir, "src", projectName)

	info, err := os.Stat(oldPath)
	if err != nil {
		msg := "template src directory not found: " + oldPath
		if available := listSrcDirs(filepath.Join(projectDir, "src")); len(available) > 0 {
			msg += " (available: " + strings.Join(available, ", ") + ")"
		}
		return errors.New(errors.ErrRenameFailed, msg)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrRenameFailed, "template src path is not a directory: %s", oldPath)
	}

	if _, err := os.Stat(newPath); err == nil {
		return errors.Newf(errors.ErrTargetConflict, "target directory already exists: %s", newPath)
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		return errors.Wrapf(err, errors.ErrRenameFailed, "cannot rename %s to %s", oldPath, newPath)
	}

	logger := logging.GetLogger("template.copy")
	logger.Debug().
		Str("from", templateName).
		Str("to", projectName).
		Msg("src directory renamed")
	return nil
}

func listSrcDirs(srcDir string) []string {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}
