package schedulesource

import (
	"context"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/travigo/islandferry/pkg/ferry"
)

type FileSource struct {
	Path string
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Load(ctx context.Context) (*ferry.Document, error) {
	if err := ctx.Err(); err != nil {
		return retError(s, err)
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return retError(s, err)
	}
	defer file.Close()

	document, err := ferry.DecodeDocument(file)
	if err != nil {
		return retError(s, fmt.Errorf("decode %s: %w", s.Path, err))
	}

	loadCount.With(prometheus.Labels{"source": s.Name()}).Inc()

	return document, nil
}
