package collection

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tagsort/internal/config"
	"tagsort/internal/errors"
	"tagsort/internal/log"
	"tagsort/internal/segment"
	"tagsort/pkg/types"
)

// nameJoiner sits between the composed name and the original file name
const nameJoiner = "__"

// maxRenameAttempts bounds the search for a free "_(n)" suffix
const maxRenameAttempts = 1000

// SafeName replaces every space in a source file name with an underscore
func SafeName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// DestinationName returns "<newName without trailing separators>__<safe source name>"
func DestinationName(newName, source string) string {
	return segment.TrimTrailing(newName) + nameJoiner + SafeName(source)
}

// Destination computes where MoveCurrent would put the current file,
// before any collision handling
func (c *Collection) Destination(category, newName string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.current()
	if !ok {
		return "", errors.ErrCollectionEmpty
	}
	return c.destination(category, newName, entry.Name)
}

func (c *Collection) destination(category, newName, source string) (string, error) {
	if err := validCategory(category); err != nil {
		return "", err
	}
	if strings.ContainsAny(newName, `/\`) {
		return "", errors.NewInvalidInputError("name cannot contain path separators", nil).
			WithContext("name", newName)
	}
	return filepath.Join(c.root, c.outputDir, category, DestinationName(newName, source)), nil
}

// MoveCurrent copies the current file to root/<output>/<category>/<name>__<source>
// and then deletes the source.
//
// A CopyFailed or DestinationExists error leaves the collection and the source
// untouched. A SourceNotRemoved error means the copy landed but the source could
// not be deleted: the entry is still removed from the collection and the result
// describes the copy.
func (c *Collection) MoveCurrent(category, newName string) (types.MoveResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.current()
	if !ok {
		return types.MoveResult{}, errors.ErrCollectionEmpty
	}

	dest, err := c.destination(category, newName, entry.Name)
	if err != nil {
		return types.MoveResult{}, err
	}

	result := types.MoveResult{
		SourcePath:      entry.Path,
		DestinationPath: dest,
		Category:        category,
	}
	logger := c.logger.With(log.F("source", entry.Path), log.F("category", category))

	final, err := c.resolveCollision(entry.Path, dest)
	if err != nil {
		logger.With(log.ErrorFields(err)...).Warn("move refused")
		return result, err
	}
	result.DestinationPath = final
	result.Renamed = final != dest

	if err := copyFile(entry.Path, final, c.collision == config.CollisionOverwrite); err != nil {
		moveErr := errors.NewMoveError("copy failed", entry.Path, final, errors.CopyFailed, err)
		logger.With(log.ErrorFields(moveErr)...).Error("move failed, source untouched")
		return result, moveErr
	}

	if err := c.remove(entry.Path); err != nil {
		c.removeCurrent()
		moveErr := errors.NewMoveError("source not removed after copy", entry.Path, final, errors.SourceNotRemoved, err)
		logger.With(log.ErrorFields(moveErr)...).Error("file duplicated, source left in place")
		return result, moveErr
	}

	result.SourceRemoved = true
	c.removeCurrent()
	logger.With(log.F("destination", final), log.F("remaining", len(c.entries))).Info("file moved")
	return result, nil
}

// resolveCollision applies the collision strategy to dest and returns the
// path the copy should be written to
func (c *Collection) resolveCollision(src, dest string) (string, error) {
	_, err := os.Lstat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return dest, nil
	}
	if err != nil {
		return "", errors.NewMoveError("cannot check destination", src, dest, errors.CopyFailed, err)
	}

	switch c.collision {
	case config.CollisionSkip:
		return "", errors.NewMoveError("destination already exists", src, dest, errors.DestinationExists, nil)
	case config.CollisionOverwrite:
		c.logger.With(log.F("destination", dest)).Warn("overwriting existing file")
		return dest, nil
	default:
		return findUniqueDestName(src, dest)
	}
}

// findUniqueDestName adds the first free "_(n)" suffix before the extension
func findUniqueDestName(src, dest string) (string, error) {
	ext := filepath.Ext(dest)
	base := strings.TrimSuffix(dest, ext)

	for counter := 1; counter <= maxRenameAttempts; counter++ {
		candidate := fmt.Sprintf("%s_(%d)%s", base, counter, ext)
		if _, err := os.Lstat(candidate); errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", errors.NewMoveError(
		fmt.Sprintf("no free name after %d attempts", maxRenameAttempts),
		src, dest, errors.DestinationExists, nil)
}

// copyFile writes the bytes of src to dst. Unless overwrite is set the
// destination must not exist yet. A partial destination is removed on failure.
func copyFile(src, dst string, overwrite bool) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(dst, flags, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return err
	}
	return nil
}

func validCategory(category string) error {
	if category == "" || category == "." || category == ".." || strings.ContainsAny(category, `/\`) {
		return errors.NewInvalidInputError("category must be a single folder name", nil).
			WithContext("category", category)
	}
	return nil
}
