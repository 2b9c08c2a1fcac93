package s3store_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/importkit/pkg/failurestore"
	"github.com/dmitrymomot/importkit/pkg/failurestore/s3store"
	"github.com/dmitrymomot/importkit/pkg/rowvalidator"
)

// bucket is an in-memory S3Client that pages listings two keys at a time.
type bucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted map[string]bool
}

func newBucket() *bucket {
	return &bucket{objects: make(map[string][]byte), deleted: make(map[string]bool)}
}

func (b *bucket) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[aws.ToString(in.Key)] = data
	return &s3.PutObjectOutput{}, nil
}

func (b *bucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := aws.ToString(in.Key)
	if b.deleted[key] {
		return nil, &types.NoSuchKey{Message: aws.String("gone")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(b.objects[key]))}, nil
}

func (b *bucket) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var keys []string
	for key := range b.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)

	start := 0
	if in.ContinuationToken != nil {
		start, _ = strconv.Atoi(*in.ContinuationToken)
	}
	end := min(start+2, len(keys))

	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(end < len(keys))}
	for _, key := range keys[start:end] {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
	}
	if end < len(keys) {
		out.NextContinuationToken = aws.String(strconv.Itoa(end))
	}
	return out, nil
}

func (b *bucket) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

type mockS3Client struct {
	mock.Mock
}

func (m *mockS3Client) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.PutObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.GetObjectOutput)
	return out, args.Error(1)
}

func (m *mockS3Client) ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	args := m.Called(ctx, in)
	out, _ := args.Get(0).(*s3.ListObjectsV2Output)
	return out, args.Error(1)
}

func failures(rows ...int) []rowvalidator.Failure {
	out := make([]rowvalidator.Failure, len(rows))
	for i, row := range rows {
		out[i] = rowvalidator.Failure{
			Row:       row,
			Attribute: "email",
			Errors:    []string{"The email field must be a valid email address."},
			Values:    map[string]any{"email": "row-" + strconv.Itoa(row)},
		}
	}
	return out
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := s3store.New(context.Background(), s3store.Config{Region: "eu-west-1"})
	require.ErrorIs(t, err, s3store.ErrInvalidConfig)

	store, err := s3store.New(context.Background(),
		s3store.Config{Bucket: "imports", Region: "eu-west-1", Prefix: "/failures/"},
		s3store.WithS3Client(newBucket()),
	)
	require.NoError(t, err)

	runID := uuid.MustParse("6f1c2b9e-8a3d-4c55-9f0e-2d7b4a1c9e30")
	assert.Equal(t, "failures/6f1c2b9e-8a3d-4c55-9f0e-2d7b4a1c9e30/", store.RunPrefix(runID))
}

func TestStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	cfg := s3store.Config{Bucket: "imports", Region: "eu-west-1", Prefix: "import-failures"}

	t.Run("writes one object per failure under the run prefix", func(t *testing.T) {
		t.Parallel()

		b := newBucket()
		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(b))
		require.NoError(t, err)

		runID := uuid.New()
		require.NoError(t, store.Save(ctx, runID, failures(1, 4, 6)...))

		keys := b.keys()
		require.Len(t, keys, 3)
		for _, key := range keys {
			assert.True(t, strings.HasPrefix(key, "import-failures/"+runID.String()+"/"), key)
			assert.True(t, strings.HasSuffix(key, ".json"), key)
		}
	})

	t.Run("lists across pages in save order", func(t *testing.T) {
		t.Parallel()

		b := newBucket()
		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(b))
		require.NoError(t, err)

		runID := uuid.New()
		require.NoError(t, store.Save(ctx, runID, failures(1, 4, 6)...))
		require.NoError(t, store.Save(ctx, runID, failures(9, 12)...))
		require.NoError(t, store.Save(ctx, uuid.New(), failures(0)...))

		records, err := store.List(ctx, runID)
		require.NoError(t, err)
		require.Len(t, records, 5)

		rows := make([]int, len(records))
		for i, rec := range records {
			rows[i] = rec.Failure.Row
			assert.Equal(t, runID, rec.RunID)
		}
		assert.Equal(t, []int{1, 4, 6, 9, 12}, rows)
		assert.Equal(t, "row-9", records[3].Failure.Values["email"])
	})

	t.Run("keeps integer cells as integers", func(t *testing.T) {
		t.Parallel()

		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(newBucket()))
		require.NoError(t, err)

		runID := uuid.New()
		require.NoError(t, store.Save(ctx, runID, rowvalidator.Failure{
			Row:       2,
			Attribute: "age",
			Errors:    []string{"The age field must be at least 18."},
			Values:    map[string]any{"age": 17, "score": 4.5, "tags": []any{1, "vip"}},
		}))

		records, err := store.List(ctx, runID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, map[string]any{
			"age":   int64(17),
			"score": 4.5,
			"tags":  []any{int64(1), "vip"},
		}, records[0].Failure.Values)
	})

	t.Run("skips objects deleted while listing", func(t *testing.T) {
		t.Parallel()

		b := newBucket()
		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(b))
		require.NoError(t, err)

		runID := uuid.New()
		require.NoError(t, store.Save(ctx, runID, failures(1, 2)...))
		b.deleted[b.keys()[0]] = true

		records, err := store.List(ctx, runID)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, 2, records[0].Failure.Row)
	})

	t.Run("wraps put errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("access denied")
		client := new(mockS3Client)
		client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.Bucket) == "imports" && aws.ToString(in.ContentType) == "application/json"
		})).Return(nil, boom).Once()

		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(client))
		require.NoError(t, err)

		err = store.Save(ctx, uuid.New(), failures(1, 2)...)
		require.ErrorIs(t, err, failurestore.ErrSaveFailed)
		require.ErrorIs(t, err, boom)
		client.AssertExpectations(t)
	})

	t.Run("wraps list errors", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("throttled")
		client := new(mockS3Client)
		client.On("ListObjectsV2", mock.Anything, mock.Anything).Return(nil, boom).Once()

		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(client))
		require.NoError(t, err)

		_, err = store.List(ctx, uuid.New())
		require.ErrorIs(t, err, failurestore.ErrListFailed)
		client.AssertExpectations(t)
	})

	t.Run("rejects a nil run id", func(t *testing.T) {
		t.Parallel()

		store, err := s3store.New(ctx, cfg, s3store.WithS3Client(newBucket()))
		require.NoError(t, err)
		require.ErrorIs(t, store.Save(ctx, uuid.Nil, failures(1)...), failurestore.ErrMissingRunID)
	})
}
