package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateMessageCountRejects(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"0", positiveNumberError},
		{"-5", positiveNumberError},
		{"abc", invalidInputError},
		{"", invalidInputError},
		{"1001", "Максимум 1000 сообщений. Пожалуйста, введите меньшее количество."},
	}

	for _, tc := range cases {
		_, err := validateMessageCount(tc.input, 1000)
		require.Error(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, err.Error(), "input %q", tc.input)
	}
}

func TestValidateMessageCountAccepts(t *testing.T) {
	for _, input := range []string{"1", "10", "1000"} {
		count, err := validateMessageCount(input, 1000)
		require.NoError(t, err, "input %q", input)
		assert.Positive(t, count)
	}

	count, err := validateMessageCount("1000", 1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, count)
}
