package noop

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type infoLogger struct {
	lines []string
}

func (l *infoLogger) Info(s string) { l.lines = append(l.lines, s) }

func Test_Service(t *testing.T) {
	t.Parallel()

	logger := &infoLogger{}
	service := New("http server", logger)

	assert.Equal(t, "http server (disabled)", service.String())

	runError, err := service.Start(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, runError)
	assert.Equal(t, []string{"http server is disabled"}, logger.lines)

	err = service.Stop()
	assert.NoError(t, err)
}
