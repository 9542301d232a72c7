package datasetService

import (
	"os"
	"path/filepath"
	"testing"

	"MotionTrace/internal/api/dataset"
	"MotionTrace/pkg/landmark"
	"MotionTrace/pkg/sequence"
	"MotionTrace/pkg/utils"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"
)

func newTestService(t *testing.T) (*datasetService, *sequence.Store) {
	t.Helper()

	log := logrus.New()
	log.SetOutput(os.Stderr)

	store, err := sequence.NewStore(t.TempDir(), log)
	require.NoError(t, err)

	svc := &datasetService{
		log:         log,
		store:       store,
		utils:       utils.New(),
		artifactDir: t.TempDir(),
	}

	return svc, store
}

func writeFullFrames(t *testing.T, store *sequence.Store, name string, frames int) {
	t.Helper()

	seq := make([][]float32, frames)
	for i := range seq {
		frame := make([]float32, landmark.TotalFeatures)
		frame[landmark.PoseStart] = float32(i + 1)
		seq[i] = frame
	}

	_, err := store.Write(name, seq)
	require.NoError(t, err)
}

func TestBuildDatasetStacksSequences(t *testing.T) {
	svc, store := newTestService(t)

	writeFullFrames(t, store, "a_landmarks.json", 3)
	writeFullFrames(t, store, "b_landmarks.json", 7)

	build, err := svc.BuildDataset(context.Background(), []string{"Pose", "LeftHand"}, 5)
	require.NoError(t, err)

	assert.Equal(t, 2, build.InstanceCount)
	assert.Equal(t, 5, build.MaxLen)
	assert.Equal(t, landmark.PoseFeatures+landmark.HandFeatures, build.FeatureWidth)
	assert.Equal(t, 0, build.SkippedCount)
	assert.Equal(t, "Pose,LeftHand", build.Landmarks)
	assert.NotEmpty(t, build.ID)

	info, err := os.Stat(build.ArtifactPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	assert.Equal(t, ".npy", filepath.Ext(build.ArtifactPath))
}

func TestBuildDatasetSkipsMalformedFiles(t *testing.T) {
	svc, store := newTestService(t)

	writeFullFrames(t, store, "good_one_landmarks.json", 2)
	writeFullFrames(t, store, "good_two_landmarks.json", 4)

	// A frame with the wrong width poisons the whole file, not the build.
	_, err := store.Write("bad_width_landmarks.json", [][]float32{make([]float32, 10)})
	require.NoError(t, err)

	// Unparseable JSON is skipped the same way.
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "corrupt_landmarks.json"), []byte("{not json"), 0o644))

	build, err := svc.BuildDataset(context.Background(), []string{"Pose"}, 3)
	require.NoError(t, err)

	assert.Equal(t, 2, build.InstanceCount)
	assert.Equal(t, 2, build.SkippedCount)
}

func TestBuildDatasetNoValidSequences(t *testing.T) {
	svc, store := newTestService(t)

	_, err := store.Write("only_bad_landmarks.json", [][]float32{make([]float32, 3)})
	require.NoError(t, err)

	_, err = svc.BuildDataset(context.Background(), []string{"Pose"}, 3)
	require.ErrorIs(t, err, dataset.ErrNoValidSequences)
}

func TestBuildDatasetEmptyDirectory(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BuildDataset(context.Background(), []string{"Face"}, 10)
	require.ErrorIs(t, err, dataset.ErrNoValidSequences)
}

func TestBuildDatasetValidatesEagerly(t *testing.T) {
	svc, store := newTestService(t)

	writeFullFrames(t, store, "clip_landmarks.json", 2)

	_, err := svc.BuildDataset(context.Background(), []string{"Torso"}, 3)
	require.ErrorIs(t, err, landmark.ErrInvalidSelection)

	_, err = svc.BuildDataset(context.Background(), nil, 3)
	require.ErrorIs(t, err, landmark.ErrInvalidSelection)

	_, err = svc.BuildDataset(context.Background(), []string{"Pose"}, 0)
	require.ErrorIs(t, err, landmark.ErrInvalidMaxLen)

	// No artifact may exist after failed validation.
	entries, err := os.ReadDir(svc.artifactDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestBuildDatasetNormalizesLength(t *testing.T) {
	svc, store := newTestService(t)

	writeFullFrames(t, store, "short_landmarks.json", 2)
	writeFullFrames(t, store, "long_landmarks.json", 9)

	build, err := svc.BuildDataset(context.Background(), []string{"RightHand"}, 4)
	require.NoError(t, err)

	assert.Equal(t, 2, build.InstanceCount)
	assert.Equal(t, landmark.HandFeatures, build.FeatureWidth)

	data, err := os.ReadFile(build.ArtifactPath)
	require.NoError(t, err)
	assert.Contains(t, string(data[:128]), "(2, 4, 63)")
}

func TestGetBuildStatusWithoutBackends(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetBuildStatus(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, dataset.ErrBuildNotFound)
}

func TestPresignArtifactWithoutBackends(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.PresignArtifact(context.Background(), "01ARZ3NDEKTSV4RRFFQ69G5FAV")
	require.ErrorIs(t, err, dataset.ErrArtifactNotAvailable)
}
