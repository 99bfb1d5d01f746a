package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"phenopipe/internal/domain/entity"
)

type fakeSegmenter struct {
	result *entity.PairResult
	err    error
	gotNIR []byte
}

func (f *fakeSegmenter) ProcessPair(ctx context.Context, vis, nir []byte) (*entity.PairResult, error) {
	f.gotNIR = nir
	return f.result, f.err
}

type fakeLocator struct {
	path string
	err  error
}

func (f *fakeLocator) FindNIR(visPath string) (string, error) {
	return f.path, f.err
}

type recordRepo struct {
	appended map[string][]entity.MetricBlock
}

func newRecordRepo() *recordRepo {
	return &recordRepo{appended: make(map[string][]entity.MetricBlock)}
}

func (r *recordRepo) AppendBlocks(ctx context.Context, path string, blocks []entity.MetricBlock) error {
	r.appended[path] = append(r.appended[path], blocks...)
	return nil
}

func writePair(t *testing.T) (visPath, nirPath string) {
	t.Helper()
	dir := t.TempDir()
	visPath = filepath.Join(dir, "plant_VIS_SV_0.png")
	nirPath = filepath.Join(dir, "plant_NIR_SV_0.png")
	require.NoError(t, os.WriteFile(visPath, []byte("vis"), 0o644))
	require.NoError(t, os.WriteFile(nirPath, []byte("nir"), 0o644))
	return visPath, nirPath
}

func visBlock() entity.MetricBlock {
	return entity.MetricBlock{Header: []string{"HEADER_SHAPES", "area"}, Data: []string{"SHAPES_DATA", "42"}}
}

func TestPipelineService_WritesBothResultFiles(t *testing.T) {
	visPath, nirPath := writePair(t)
	seg := &fakeSegmenter{result: &entity.PairResult{
		VIS: []entity.MetricBlock{visBlock()},
		NIR: []entity.MetricBlock{{Header: []string{"HEADER_NIR"}, Data: []string{"NIR_DATA"}}},
	}}
	repo := newRecordRepo()
	svc := NewPipelineService(seg, &fakeLocator{path: nirPath}, repo)

	out, err := svc.ProcessPair(context.Background(), visPath, "result.txt", "coresult.txt")
	require.NoError(t, err)
	require.False(t, out.NoPlant)
	require.NoError(t, out.NIRErr)
	require.Len(t, repo.appended["result.txt"], 1)
	require.Len(t, repo.appended["coresult.txt"], 1)
	require.Equal(t, []byte("nir"), seg.gotNIR)
}

func TestPipelineService_NoPlantWritesNothing(t *testing.T) {
	visPath, nirPath := writePair(t)
	seg := &fakeSegmenter{result: &entity.PairResult{NoPlant: true}}
	repo := newRecordRepo()
	svc := NewPipelineService(seg, &fakeLocator{path: nirPath}, repo)

	out, err := svc.ProcessPair(context.Background(), visPath, "result.txt", "coresult.txt")
	require.NoError(t, err)
	require.True(t, out.NoPlant)
	require.Empty(t, repo.appended)
}

func TestPipelineService_NIRNotFoundKeepsVISResults(t *testing.T) {
	visPath, _ := writePair(t)
	seg := &fakeSegmenter{result: &entity.PairResult{VIS: []entity.MetricBlock{visBlock()}}}
	repo := newRecordRepo()
	svc := NewPipelineService(seg, &fakeLocator{err: entity.ErrNIRNotFound}, repo)

	out, err := svc.ProcessPair(context.Background(), visPath, "result.txt", "coresult.txt")
	require.NoError(t, err)
	require.ErrorIs(t, out.NIRErr, entity.ErrNIRNotFound)
	require.Len(t, repo.appended["result.txt"], 1)
	require.Empty(t, repo.appended["coresult.txt"])
	require.Nil(t, seg.gotNIR)
}

func TestPipelineService_AlignmentErrorKeepsVISResults(t *testing.T) {
	visPath, nirPath := writePair(t)
	seg := &fakeSegmenter{result: &entity.PairResult{
		VIS:    []entity.MetricBlock{visBlock()},
		NIRErr: &entity.AlignmentError{Axis: "x", Resized: 600, Target: 640},
	}}
	repo := newRecordRepo()
	svc := NewPipelineService(seg, &fakeLocator{path: nirPath}, repo)

	out, err := svc.ProcessPair(context.Background(), visPath, "result.txt", "coresult.txt")
	require.NoError(t, err)
	var alignErr *entity.AlignmentError
	require.ErrorAs(t, out.NIRErr, &alignErr)
	require.Len(t, repo.appended["result.txt"], 1)
	require.Empty(t, repo.appended["coresult.txt"])
}

func TestPipelineService_SegmenterNotConfigured(t *testing.T) {
	svc := NewPipelineService(nil, &fakeLocator{}, newRecordRepo())
	_, err := svc.ProcessPair(context.Background(), "vis.png", "r", "r2")
	require.Error(t, err)
}
