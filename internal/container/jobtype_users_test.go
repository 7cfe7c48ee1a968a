package container

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJobTypeProxyMap(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect JobTypeProxyMap
	}{
		{
			name:   "empty",
			input:  "",
			expect: JobTypeProxyMap{},
		},
		{
			name:   "embedded whitespace",
			input:  "java,svc_java;pig , svc_pig",
			expect: JobTypeProxyMap{"java": "svc_java", "pig": "svc_pig"},
		},
		{
			name:   "trailing separator",
			input:  "spark,svc_spark;",
			expect: JobTypeProxyMap{"spark": "svc_spark"},
		},
		{
			name:   "whitespace inside token",
			input:  "ha doop , svc\t_hadoop",
			expect: JobTypeProxyMap{"hadoop": "svc_hadoop"},
		},
		{
			name:   "later entry wins",
			input:  "java,a;java,b",
			expect: JobTypeProxyMap{"java": "b"},
		},
		{
			name:   "extra tokens ignored",
			input:  "java,svc_java,unused",
			expect: JobTypeProxyMap{"java": "svc_java"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseJobTypeProxyMap(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, m)
		})
	}
}

func TestParseJobTypeProxyMap_Malformed(t *testing.T) {
	for _, input := range []string{"java", "java,", ",svc", "java,svc;pig"} {
		t.Run(input, func(t *testing.T) {
			m, err := ParseJobTypeProxyMap(input)
			assert.Nil(t, m)

			var parseErr *ConfigParseError
			require.True(t, errors.As(err, &parseErr), "expected ConfigParseError, got %v", err)
			assert.NotEmpty(t, parseErr.Message)
		})
	}
}

func TestSelectRelevantProxyUsers(t *testing.T) {
	m := JobTypeProxyMap{"java": "svc_java", "pig": "svc_pig"}

	assert.Equal(t, []string{"svc_java"}, SelectRelevantProxyUsers(m, []string{"java"}))
	assert.Equal(t, []string{"svc_java", "svc_pig"}, SelectRelevantProxyUsers(m, []string{"pig", "java", "hive"}))
	assert.Empty(t, SelectRelevantProxyUsers(m, []string{"hive"}))
	assert.Empty(t, SelectRelevantProxyUsers(nil, []string{"java"}))
}

func TestSelectRelevantProxyUsers_DropsEmptyMappings(t *testing.T) {
	m := JobTypeProxyMap{"java": "", "pig": "svc_pig", "hive": "svc_pig"}

	assert.Equal(t, []string{"svc_pig"}, SelectRelevantProxyUsers(m, []string{"java", "pig", "hive"}))
}
