package directory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ginzalimited/orderdesk/internal/directory"
)

func TestMergeRoster(t *testing.T) {
	tests := []struct {
		name     string
		static   []string
		fetched  []string
		expected []string
	}{
		{
			name:     "merges_and_sorts",
			static:   []string{"Rakesh Jain", "Mumbai HO"},
			fetched:  []string{"Amit Korgaonkar"},
			expected: []string{"Amit Korgaonkar", "Mumbai HO", "Rakesh Jain"},
		},
		{
			name:     "deduplicates_exact_match_after_trim",
			static:   []string{"Rakesh Jain "},
			fetched:  []string{" Rakesh Jain", "Rakesh Jain"},
			expected: []string{"Rakesh Jain"},
		},
		{
			name:     "case_sensitive_dedup_keeps_both",
			static:   []string{"ravindra kaushik"},
			fetched:  []string{"Ravindra Kaushik"},
			expected: []string{"Ravindra Kaushik", "ravindra kaushik"},
		},
		{
			name:     "drops_empty_names",
			static:   []string{"", "  "},
			fetched:  []string{"Durgesh Bhati"},
			expected: []string{"Durgesh Bhati"},
		},
		{
			name:     "nil_inputs",
			static:   nil,
			fetched:  nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, directory.MergeRoster(tt.static, tt.fetched))
		})
	}
}
