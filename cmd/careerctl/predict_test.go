package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{
		"predict",
		"--model-dir", "../../internal/ml/testdata",
		"--math-interest", "9",
		"--science-interest", "8",
		"--literature-interest", "2",
		"--coding-interest", "9",
		"--teamwork", "5",
		"--creativity", "6",
		"--helping-interest", "3",
		"--leadership", "4",
		"--travel-interest", "2",
		"--stable-job-interest", "7",
		"--business-interest", "3",
		"--communication-skills", "6",
	})

	require.NoError(t, cmd.Execute())

	var got predictOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.TopCareers, 3)
	assert.Equal(t, "Software Engineer", got.TopCareers[0].Label)
	assert.Equal(t, 9, got.Scores["coding_interest"])
}

func TestPredictCmd_MissingArtifacts(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"predict", "--model-dir", t.TempDir()})

	assert.Error(t, cmd.Execute())
}
