package instvert

import "testing"

func TestStageOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []StageOption
		want stageOptions
	}{
		{
			name: "defaults",
			want: defaultStageOptions(),
		},
		{
			name: "all set",
			opts: []StageOption{WithCapacity(8), WithPrecision(PrecisionLow), WithWorkers(3), WithBatchSize(64)},
			want: stageOptions{capacity: 8, precision: PrecisionLow, workers: 3, batchSize: 64},
		},
		{
			name: "non-positive capacity and batch keep defaults",
			opts: []StageOption{WithCapacity(0), WithBatchSize(-1)},
			want: defaultStageOptions(),
		},
		{
			name: "last option wins",
			opts: []StageOption{WithPrecision(PrecisionLow), WithPrecision(PrecisionFull)},
			want: stageOptions{
				capacity:  DefaultInstanceCapacity,
				precision: PrecisionFull,
				batchSize: DefaultBatchSize,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaultStageOptions()
			for _, opt := range tt.opts {
				opt(&got)
			}
			if got != tt.want {
				t.Errorf("options = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNewStage_AppliesOptions(t *testing.T) {
	st := NewStage(WithCapacity(16), WithPrecision(PrecisionFull), WithWorkers(2))
	defer st.Close()

	if st.Capacity() != 16 || st.Precision() != PrecisionFull || st.Workers() != 2 {
		t.Errorf("Capacity() = %d, Precision() = %v, Workers() = %d; want 16, full, 2",
			st.Capacity(), st.Precision(), st.Workers())
	}
}
