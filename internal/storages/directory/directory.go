// Copyright 2023 Greenmask
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package directory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync"

	"github.com/tssrikanth/codex2021/internal/storages"
)

var _ storages.Storager = (*Storage)(nil)

const (
	dirMode  os.FileMode = 0750
	fileMode os.FileMode = 0640
)

var errPathIsFile = errors.New("received directory path is file")

type Config struct {
	Path string `mapstructure:"path" json:"path,omitempty" yaml:"path,omitempty"`
}

func NewConfig() *Config {
	return &Config{}
}

type Storage struct {
	dirMode  os.FileMode
	fileMode os.FileMode
	cwd      string
	mx       sync.Mutex
}

// NewStorage - creates the storage in cfg.Path. The directory is created on the first PutObject when it
// does not exist yet.
func NewStorage(cfg *Config) (*Storage, error) {
	fileInfo, err := os.Stat(cfg.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error getting directory stat: %w", err)
	}
	if err == nil && !fileInfo.IsDir() {
		return nil, fmt.Errorf("%s: %w", cfg.Path, errPathIsFile)
	}
	return &Storage{
		dirMode:  dirMode,
		fileMode: fileMode,
		cwd:      cfg.Path,
	}, nil
}

func (s *Storage) GetCwd() string {
	return s.cwd
}

func (s *Storage) GetObject(ctx context.Context, filePath string) (io.ReadCloser, error) {
	f, err := os.Open(path.Join(s.cwd, filePath))
	if err != nil {
		return nil, fmt.Errorf("unable to open file: %w", err)
	}
	return f, nil
}

func (s *Storage) PutObject(ctx context.Context, filePath string, body io.Reader) error {
	dir := path.Join(s.cwd, path.Dir(filePath))
	_, err := os.Stat(dir)
	if err != nil && errors.Is(err, fs.ErrNotExist) {
		s.mx.Lock()
		if err = os.MkdirAll(dir, s.dirMode); err != nil {
			s.mx.Unlock()
			return fmt.Errorf("error creating directory: %w", err)
		}
		s.mx.Unlock()
	} else if err != nil {
		return fmt.Errorf("error getting file stat: %w", err)
	}
	f, err := os.OpenFile(path.Join(s.cwd, filePath), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, s.fileMode)
	if err != nil {
		return fmt.Errorf("unable to create file: %w", err)
	}
	defer f.Close()

	done := make(chan struct{})
	go func() {
		_, err = io.Copy(f, body)
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
	}

	if err != nil {
		return fmt.Errorf("error writing data: %w", err)
	}
	return nil
}

func (s *Storage) Exists(ctx context.Context, fileName string) (bool, error) {
	_, err := os.Stat(path.Join(s.cwd, fileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
