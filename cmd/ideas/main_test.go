package main

import (
	"reflect"
	"testing"
)

func TestRewriteDirectProjectArgs(t *testing.T) {
	t.Parallel()

	const id = "3f2a9c1e-5b7d-4c1a-9e2f-0a1b2c3d4e5f"

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "no args",
			in:   []string{"ideas"},
			want: []string{"ideas"},
		},
		{
			name: "direct project id first token",
			in:   []string{"ideas", id},
			want: []string{"ideas", "projects", "show", id},
		},
		{
			name: "direct id prefix",
			in:   []string{"ideas", "3f2a9c1e"},
			want: []string{"ideas", "projects", "show", "3f2a9c1e"},
		},
		{
			name: "direct project id after value flag",
			in:   []string{"ideas", "--dir", "./tmp-test-ws", id},
			want: []string{"ideas", "--dir", "./tmp-test-ws", "projects", "show", id},
		},
		{
			name: "direct project id after equals flag",
			in:   []string{"ideas", "--dir=./tmp-test-ws", id},
			want: []string{"ideas", "--dir=./tmp-test-ws", "projects", "show", id},
		},
		{
			name: "direct project id after bool flag",
			in:   []string{"ideas", "--pretty", id},
			want: []string{"ideas", "--pretty", "projects", "show", id},
		},
		{
			name: "direct project id after double dash",
			in:   []string{"ideas", "--dir", "./tmp-test-ws", "--", id},
			want: []string{"ideas", "--dir", "./tmp-test-ws", "--", "projects", "show", id},
		},
		{
			name: "normal subcommand not rewritten",
			in:   []string{"ideas", "projects", "show", id},
			want: []string{"ideas", "projects", "show", id},
		},
		{
			name: "short hex word not rewritten",
			in:   []string{"ideas", "add"},
			want: []string{"ideas", "add"},
		},
		{
			name: "unknown command not rewritten",
			in:   []string{"ideas", "wat"},
			want: []string{"ideas", "wat"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rewriteDirectProjectArgs(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("rewriteDirectProjectArgs:\n got: %#v\nwant: %#v", got, tt.want)
			}
		})
	}
}
