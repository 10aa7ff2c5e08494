// Package catalogtest provides an in-memory catalog.Session for tests.
package catalogtest

import (
	"context"
	"sort"
	"sync"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
)

type key struct {
	kind catalog.Kind
	name string
}

// Session is a fake catalog.Session backed by a map.
type Session struct {
	mu sync.Mutex

	objects map[key]string

	// ListErr, CountErr fail the corresponding calls when set.
	ListErr  error
	CountErr error
	// DDLErrs fails GetDDL for specific names.
	DDLErrs map[string]error

	// Calls counts every session call, by method name.
	Calls map[string]int
}

// NewSession creates an empty fake session.
func NewSession() *Session {
	return &Session{
		objects: map[key]string{},
		DDLErrs: map[string]error{},
		Calls:   map[string]int{},
	}
}

// Add registers an object with its DDL.
func (s *Session) Add(kind catalog.Kind, name, ddl string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key{kind, name}] = ddl
	return s
}

// FailDDL makes GetDDL fail for name.
func (s *Session) FailDDL(name string, err error) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DDLErrs[name] = err
	return s
}

func (s *Session) ListObjects(ctx context.Context, kind catalog.Kind) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["ListObjects"]++
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	var names []string
	for k := range s.objects {
		if k.kind == kind {
			names = append(names, k.name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Session) CountMatching(ctx context.Context, kind catalog.Kind, name string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["CountMatching"]++
	if s.CountErr != nil {
		return 0, s.CountErr
	}
	if _, ok := s.objects[key{kind, name}]; ok {
		return 1, nil
	}
	return 0, nil
}

func (s *Session) GetDDL(ctx context.Context, kind catalog.Kind, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls["GetDDL"]++
	if err := s.DDLErrs[name]; err != nil {
		return "", err
	}
	ddl, ok := s.objects[key{kind, name}]
	if !ok {
		return "", catalog.NotFoundError.New("%s %s", kind, name)
	}
	return ddl, nil
}
