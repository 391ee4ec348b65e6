package env

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Token    string        `env:"TOKEN,required,notEmpty"`
	ChatID   int64         `env:"CHAT_ID"`
	Temp     float64       `env:"TEMP"`
	Stream   bool          `env:"STREAM"`
	Timeout  time.Duration `env:"TIMEOUT"`
	Greeting string        `env:"GREETING"`
	Empty    string        `env:"EMPTY"`
	NoTag    string
	hidden   string `env:"HIDDEN"`
}

func TestMarshalEnv(t *testing.T) {
	out, err := MarshalEnv(&sample{
		Token:    "123:abc",
		ChatID:   -100500,
		Temp:     0.6,
		Stream:   true,
		Timeout:  90 * time.Second,
		Greeting: "hello there",
		NoTag:    "skip",
		hidden:   "skip",
	})
	require.NoError(t, err)

	assert.Equal(t,
		"TOKEN=123:abc\nCHAT_ID=-100500\nTEMP=0.6\nSTREAM=true\nTIMEOUT=1m30s\nGREETING=\"hello there\"\n",
		out,
	)
}

func TestMarshalEnv_RejectsNonPointer(t *testing.T) {
	_, err := MarshalEnv(sample{})
	assert.Error(t, err)
}

func TestMarshalEnv_AllZero(t *testing.T) {
	out, err := MarshalEnv(&sample{})
	require.NoError(t, err)
	assert.Empty(t, out)
}
