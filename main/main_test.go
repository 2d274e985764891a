package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "walk_01_grfm.csv"), outputPath("out", "/data/trials/walk_01.csv"))
	assert.Equal(t, filepath.Join(".", "walk_grfm.csv"), outputPath(".", "walk"))
}

func TestAxisIndex(t *testing.T) {
	i, err := axisIndex("z")
	require.NoError(t, err)
	assert.Equal(t, 2, i)

	_, err = axisIndex("w")
	assert.Error(t, err)
}

func TestSetupLogging(t *testing.T) {
	defer logrus.SetLevel(logrus.GetLevel())
	defer logrus.SetFormatter(logrus.StandardLogger().Formatter)

	require.NoError(t, setupLogging("debug", "json"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	assert.Error(t, setupLogging("loud", "text"))
	assert.Error(t, setupLogging("info", "xml"))
}

const subject = `
method: ne
pelvis: pelvis
right:
  body: pelvis
  toe: [0.2, 0, 0]
left:
  body: pelvis
  toe: [0.2, 0, 0]
segments:
  - name: pelvis
    mass: 10
`

func TestReplayAndPlot(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "subject.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(subject), 0644))

	// Standing still on the right leg; the pelvis stays at the origin.
	var b strings.Builder
	b.WriteString("t,ready,phase,leading_leg,heel_strike,toe_off,tds,tss")
	for _, p := range []string{"q", "qdot", "qddot"} {
		for i := 0; i < 6; i++ {
			b.WriteString("," + p + string(rune('0'+i)))
		}
	}
	b.WriteString("\n")
	for _, ts := range []string{"0.00", "0.01", "0.02"} {
		b.WriteString(ts + ",true,left_swing,right,0,0,0.1,0.4" + strings.Repeat(",0", 18) + "\n")
	}

	trialPath := filepath.Join(dir, "stand.csv")
	require.NoError(t, os.WriteFile(trialPath, []byte(b.String()), 0644))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"replay", "--config", cfg, "--out", dir, trialPath})
	require.NoError(t, rootCmd.Execute())

	result := filepath.Join(dir, "stand_grfm.csv")
	data, err := os.ReadFile(result)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "0,0,98.0665,0,"), lines[1])

	png := filepath.Join(dir, "stand.png")
	rootCmd.SetArgs([]string{"plot", "--out", png, result})
	require.NoError(t, rootCmd.Execute())

	info, err := os.Stat(png)
	require.NoError(t, err)
	assert.True(t, info.Size() > 0)
}
