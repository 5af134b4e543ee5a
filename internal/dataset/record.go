package dataset

// ImageRecord is one image's row in the output dataset. The five pairs are flattened
// into fixed field names. Level fields are only written when level capture is enabled.
type ImageRecord struct {
	ImagePath string `json:"image_path" parquet:"image_path" yaml:"image_path"`
	Q1        string `json:"q1" parquet:"q1" yaml:"q1"`
	A1        string `json:"a1" parquet:"a1" yaml:"a1"`
	L1        *int   `json:"l1,omitempty" parquet:"l1" yaml:"l1,omitempty"`
	Q2        string `json:"q2" parquet:"q2" yaml:"q2"`
	A2        string `json:"a2" parquet:"a2" yaml:"a2"`
	L2        *int   `json:"l2,omitempty" parquet:"l2" yaml:"l2,omitempty"`
	Q3        string `json:"q3" parquet:"q3" yaml:"q3"`
	A3        string `json:"a3" parquet:"a3" yaml:"a3"`
	L3        *int   `json:"l3,omitempty" parquet:"l3" yaml:"l3,omitempty"`
	Q4        string `json:"q4" parquet:"q4" yaml:"q4"`
	A4        string `json:"a4" parquet:"a4" yaml:"a4"`
	L4        *int   `json:"l4,omitempty" parquet:"l4" yaml:"l4,omitempty"`
	Q5        string `json:"q5" parquet:"q5" yaml:"q5"`
	A5        string `json:"a5" parquet:"a5" yaml:"a5"`
	L5        *int   `json:"l5,omitempty" parquet:"l5" yaml:"l5,omitempty"`
}

// Pair returns pointers to the question, answer and level fields of the n-th pair (1-based).
// It returns nils when n is out of range.
func (r *ImageRecord) Pair(n int) (question, answer *string, level **int) {
	switch n {
	case 1:
		return &r.Q1, &r.A1, &r.L1
	case 2:
		return &r.Q2, &r.A2, &r.L2
	case 3:
		return &r.Q3, &r.A3, &r.L3
	case 4:
		return &r.Q4, &r.A4, &r.L4
	case 5:
		return &r.Q5, &r.A5, &r.L5
	}
	return nil, nil, nil
}

// Complete reports whether every question and answer is non-empty
func (r *ImageRecord) Complete() bool {
	if r.ImagePath == "" {
		return false
	}
	for n := 1; n <= 5; n++ {
		q, a, _ := r.Pair(n)
		if *q == "" || *a == "" {
			return false
		}
	}
	return true
}
