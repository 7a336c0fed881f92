package internal

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhaseLogging(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	in := NewInterpreter(&testPrinter{}, log)
	require.NoError(t, in.Run(`var a = 1; print a;`))

	var phases []string
	for _, entry := range hook.AllEntries() {
		assert.Equal(t, logrus.DebugLevel, entry.Level)
		phases = append(phases, entry.Data["phase"].(string))
	}
	assert.Equal(t, []string{"scan", "parse", "resolve", "interpret"}, phases)
	assert.Equal(t, false, hook.LastEntry().Data["failed"])
}

func TestTraceLogging(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.TraceLevel)

	in := NewInterpreter(&testPrinter{}, log)
	hook.Reset()
	require.NoError(t, in.Run(`{ var a = 1; print a; }`))

	var resolved, defined []*logrus.Entry
	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "resolved local":
			resolved = append(resolved, entry)
		case "define":
			defined = append(defined, entry)
		}
	}
	require.Len(t, resolved, 1)
	assert.Equal(t, "a", resolved[0].Data["name"])
	assert.Equal(t, 0, resolved[0].Data["depth"])
	assert.NotEmpty(t, defined)
}

func TestQuietByDefault(t *testing.T) {
	var out bytes.Buffer
	in := NewInterpreter(&testPrinter{}, NewLogger(&out, logrus.WarnLevel))
	require.NoError(t, in.Run(`print 1;`))
	assert.Empty(t, out.String())
}
