// Package store persists jinline documents to a single file.
//
// A File is read and written whole. Save writes to a temporary sibling and
// renames it over the target, so a reader never observes a partial document
// and a failed inline pass leaves the previous bytes in place.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/calumari/jinline"
)

// File is a document stored at Path on Fs.
type File struct {
	Fs   afero.Fs
	Path string
}

// OS returns a File on the operating system filesystem.
func OS(path string) *File {
	return &File{Fs: afero.NewOsFs(), Path: path}
}

func ioErr(op string, err error) error {
	return &jinline.Error{Kind: jinline.KindStoreIO, Op: op, Err: err}
}

// Bytes returns the raw content of the file.
func (f *File) Bytes() ([]byte, error) {
	b, err := afero.ReadFile(f.Fs, f.Path)
	if err != nil {
		return nil, ioErr("load", err)
	}
	return b, nil
}

// Load reads and decodes the document. A file that does not hold valid JSON
// yields an error of kind KindMalformedJSON.
func (f *File) Load() (any, error) {
	b, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	v, err := jinline.Parse(b)
	if err != nil {
		return nil, &jinline.Error{Kind: jinline.KindMalformedJSON, Op: "load", Err: fmt.Errorf("%s: %w", f.Path, err)}
	}
	return v, nil
}

// Save formats v and replaces the file content atomically.
func (f *File) Save(v any) error {
	b, err := jinline.Format(v)
	if err != nil {
		return err
	}
	return f.SaveRaw(b)
}

// SaveRaw replaces the file content with b atomically.
func (f *File) SaveRaw(b []byte) error {
	dir := filepath.Dir(f.Path)
	tmp, err := afero.TempFile(f.Fs, dir, "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return ioErr("save", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		f.Fs.Remove(name)
		return ioErr("save", err)
	}
	if err := tmp.Close(); err != nil {
		f.Fs.Remove(name)
		return ioErr("save", err)
	}
	if err := f.Fs.Chmod(name, 0o644); err != nil && !os.IsNotExist(err) {
		f.Fs.Remove(name)
		return ioErr("save", err)
	}
	if err := f.Fs.Rename(name, f.Path); err != nil {
		f.Fs.Remove(name)
		return ioErr("save", err)
	}
	return nil
}

// Envelope wraps fetched content the way it is first persisted, before the
// inline pass runs over it.
func Envelope(content any, now time.Time) jinline.D {
	return jinline.D{
		{Key: "content", Value: content},
		{Key: "timestamp", Value: now.Format(time.RFC3339Nano)},
	}
}

// InlineFile loads the document in f, inlines it with in and saves the whole
// document back. Nothing is written unless inlining succeeds.
func InlineFile(f *File, in *jinline.Inliner, log *zap.Logger) (*jinline.Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	doc, err := f.Load()
	if err != nil {
		return nil, err
	}
	log.Debug("document loaded", zap.String("file", f.Path), zap.Strings("root_keys", jinline.RootKeys(doc)))

	res, err := in.Inline(doc)
	if err != nil {
		return nil, err
	}
	if err := f.Save(doc); err != nil {
		return nil, err
	}
	log.Debug("document saved", zap.String("file", f.Path), zap.String("path", res.Path.String()))
	return res, nil
}
