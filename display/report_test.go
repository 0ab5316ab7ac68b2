package display

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay120/duckling-1/eval"
	"github.com/vijay120/duckling-1/ser"
)

func TestSystemSummaryAccuracy(t *testing.T) {
	assert.Equal(t, 0.75, SystemSummary{Correct: 3, Incorrect: 1}.Accuracy())
	assert.Equal(t, 0.0, SystemSummary{}.Accuracy())
}

func TestWriteMissedEntities(t *testing.T) {
	misses := []eval.Miss{
		{
			Index: 42,
			Query: "set a timer for {5 minutes|sys_duration}",
			Expected: ser.Annotation{
				{Start: 16, End: 25, Label: "duration"},
			},
			Predicted: ser.Annotation{
				{Start: 18, End: 25, Label: "duration"},
				{Start: 16, End: 17, Label: "number"},
			},
		},
		{
			Index:    7,
			Query:    "wake me at {noon|sys_time}",
			Expected: ser.Annotation{{Start: 11, End: 15, Label: "time"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteMissedEntities(&buf, misses))

	want := "Index: 42\n" +
		"Query: set a timer for {5 minutes|sys_duration}\n" +
		"Expected Sys Entities: duration\n" +
		"Actual Sys Entities: duration, number\n" +
		"\n" +
		"Index: 7\n" +
		"Query: wake me at {noon|sys_time}\n" +
		"Expected Sys Entities: time\n" +
		"Actual Sys Entities: \n" +
		"\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteMissedEntitiesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMissedEntities(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestMarshalJSONSummary(t *testing.T) {
	s := Summary{
		Queries: 10,
		Systems: []SystemSummary{
			{System: "duckling", Correct: 8, Incorrect: 2},
		},
		Regressions: 1,
	}

	data, err := MarshalJSON(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"system": "duckling"`)
	assert.Contains(t, string(data), `"regressions": 1`)
}
