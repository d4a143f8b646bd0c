package assets

import "testing"

func TestOrderClause(t *testing.T) {
	cases := []struct {
		name string
		opts ListOptions
		want string
	}{
		{"default", ListOptions{}, "a.created_at DESC"},
		{"allowed column", ListOptions{Sort: "a.name", Order: "asc"}, "a.name ASC"},
		{"company name", ListOptions{Sort: "c.name"}, "c.name DESC"},
		{"disallowed column falls back", ListOptions{Sort: "a.secret; DROP TABLE assets"}, "a.created_at DESC"},
		{"unknown order is descending", ListOptions{Sort: "a.asset_no", Order: "sideways"}, "a.asset_no DESC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := orderClause(tc.opts); got != tc.want {
				t.Fatalf("orderClause(%+v) = %q, want %q", tc.opts, got, tc.want)
			}
		})
	}
}
