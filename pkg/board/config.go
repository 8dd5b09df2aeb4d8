package board

import (
	"github.com/travigo/islandferry/pkg/config"
)

func FromConfig(cfg config.BoardConfig) (*Builder, error) {
	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	window, err := cfg.Window()
	if err != nil {
		return nil, err
	}

	overlap, err := cfg.Overlap()
	if err != nil {
		return nil, err
	}

	return NewBuilder(location, window, overlap), nil
}
