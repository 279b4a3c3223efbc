package csvcodec

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_WithHeaders(t *testing.T) {
	input := "name,age,active,born\nAlice,30,true,2024-03-15T00:00:00Z\nBob,25,false,2023-01-01T00:00:00Z\n"
	opts := DefaultDecodeOptions()

	recs, err := Decode([]byte(input), opts, func() Decodable { return &person{} })
	require.NoError(t, err)
	require.Len(t, recs, 2)

	p0 := recs[0].(*person)
	assert.Equal(t, "Alice", p0.Name)
	assert.Equal(t, int64(30), p0.Age)
	assert.True(t, p0.Active)

	p1 := recs[1].(*person)
	assert.Equal(t, "Bob", p1.Name)
	assert.False(t, p1.Active)
}

func TestDecode_EmptyInput(t *testing.T) {
	recs, err := Decode([]byte(""), DefaultDecodeOptions(), func() Decodable { return &person{} })
	require.NoError(t, err)
	assert.Nil(t, recs)
}

func TestDecode_ColumnMappingRenamesHeaders(t *testing.T) {
	input := "full_name,years,is_active,birth_date\nAlice,30,true,2024-03-15T00:00:00Z\n"
	opts := DefaultDecodeOptions()
	opts.ColumnMapping = map[string]string{
		"full_name":  "name",
		"years":      "age",
		"is_active":  "active",
		"birth_date": "born",
	}
	recs, err := Decode([]byte(input), opts, func() Decodable { return &person{} })
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Alice", recs[0].(*person).Name)
}

func TestDecodeDict(t *testing.T) {
	fields := map[string]string{
		"name": "Alice", "age": "30", "active": "true", "born": "2024-03-15T00:00:00Z",
	}
	var p person
	err := DecodeDict(fields, DefaultDecodeOptions(), &p)
	require.NoError(t, err)
	assert.Equal(t, "Alice", p.Name)
	assert.Equal(t, int64(30), p.Age)
}

func TestDecodeStream(t *testing.T) {
	input := "name,age,active,born\nAlice,30,true,2024-03-15T00:00:00Z\nBob,25,false,2023-01-01T00:00:00Z\n"
	var got []string
	err := DecodeStream(context.Background(), bytes.NewReader([]byte(input)), DefaultDecodeOptions(),
		func() Decodable { return &person{} },
		func(rec Decodable) error {
			got = append(got, rec.(*person).Name)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "Bob"}, got)
}

func TestDecodeStream_HandlerErrorAborts(t *testing.T) {
	input := "name,age,active,born\nAlice,30,true,2024-03-15T00:00:00Z\nBob,25,false,2023-01-01T00:00:00Z\n"
	called := 0
	err := DecodeStream(context.Background(), bytes.NewReader([]byte(input)), DefaultDecodeOptions(),
		func() Decodable { return &person{} },
		func(rec Decodable) error {
			called++
			return assert.AnError
		})
	assert.Error(t, err)
	assert.Equal(t, 1, called)
}

func buildLargeCSV(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("name,age,active,born\n")
	for i := 0; i < rows; i++ {
		buf.WriteString("Person,30,true,2024-03-15T00:00:00Z\n")
	}
	return buf.Bytes()
}

func TestDecodeParallel_MatchesSequentialDecode(t *testing.T) {
	input := buildLargeCSV(5000)
	opts := ParallelDecodeOptions{DecodeOptions: DefaultDecodeOptions(), Workers: 4, ChunkSize: 4096}

	parallelRecs, err := DecodeParallel(context.Background(), input, opts, func() Decodable { return &person{} })
	require.NoError(t, err)

	seqRecs, err := Decode(input, opts.DecodeOptions, func() Decodable { return &person{} })
	require.NoError(t, err)

	require.Equal(t, len(seqRecs), len(parallelRecs))
	for i := range seqRecs {
		assert.Equal(t, seqRecs[i].(*person).Name, parallelRecs[i].(*person).Name)
		assert.Equal(t, seqRecs[i].(*person).Age, parallelRecs[i].(*person).Age)
	}
}

func TestDecodeParallelBatched_DeliversAllRows(t *testing.T) {
	input := buildLargeCSV(3000)
	opts := ParallelDecodeOptions{DecodeOptions: DefaultDecodeOptions(), Workers: 4, ChunkSize: 4096}

	total := 0
	err := DecodeParallelBatched(context.Background(), input, opts, func() Decodable { return &person{} },
		func(startRow int, recs []Decodable) error {
			total += len(recs)
			return nil
		})
	require.NoError(t, err)
	assert.Equal(t, 3000, total)
}
