package service

import (
	"time"

	"github.com/turris-cz/turrishw/src/internal/board"
	"github.com/turris-cz/turrishw/src/internal/domain"
	"github.com/turris-cz/turrishw/src/internal/hw"
	"github.com/turris-cz/turrishw/src/internal/log"
)

// BoardInfo describes the detected board.
type BoardInfo struct {
	Board     board.Tag `json:"board"`
	Model     string    `json:"model"`
	Supported bool      `json:"supported"`
}

// InterfaceService provides unified interface information for both CLI and API.
type InterfaceService struct {
	deps *domain.AppDependencies
}

// NewInterfaceService creates a new interface service.
func NewInterfaceService(deps *domain.AppDependencies) *InterfaceService {
	return &InterfaceService{deps: deps}
}

// GetBoard identifies the board below the configured root.
func (s *InterfaceService) GetBoard() (*BoardInfo, error) {
	tag, model, err := board.Identify(s.deps.Accessor())
	if err != nil {
		return nil, err
	}
	return &BoardInfo{Board: tag, Model: model, Supported: tag.Supported()}, nil
}

// GetInterfaces enumerates and classifies the interfaces of the board and
// keeps those whose type passes filter. A nil filter keeps everything, an
// empty one keeps nothing.
//
// An unsupported board yields an empty result. Only an unusable hardware view
// is reported as an error.
func (s *InterfaceService) GetInterfaces(filter *hw.TypeFilter) (*hw.Result, error) {
	start := time.Now()
	acc := s.deps.Accessor()
	recorder := s.deps.Recorder()

	tag, model, err := board.Identify(acc)
	if err != nil {
		s.observe(recorder, board.Unknown, start, 0, err)
		return nil, err
	}

	classifier, err := hw.ForBoard(tag)
	if err != nil {
		log.Warnf("Unsupported board model %q, no interfaces reported", model)
		s.observe(recorder, tag, start, 0, nil)
		return hw.NewResult(nil), nil
	}

	opts := hw.Options{}
	if vendors := s.deps.Vendors(); vendors != nil {
		opts.Vendors = vendors
	}
	if recorder != nil {
		opts.Observer = recorder
	}

	ifaces, err := classifier.Classify(acc, opts)
	if err != nil {
		s.observe(recorder, tag, start, 0, err)
		return nil, err
	}

	result := hw.NewResult(ifaces).Filter(filter)
	log.Debugf("Board %s: %d interfaces classified, %d after filter %s", tag, len(ifaces), result.Len(), filter)
	s.observe(recorder, tag, start, len(ifaces), nil)
	return result, nil
}

func (s *InterfaceService) observe(recorder domain.EnumerationRecorder, tag board.Tag, start time.Time, count int, err error) {
	if recorder == nil {
		return
	}
	recorder.ObserveEnumeration(tag.String(), time.Since(start), count, err)
}
