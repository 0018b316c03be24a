package jobkorea

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompanyFromScrapHandler(t *testing.T) {
	cases := []struct {
		name  string
		inner string
		want  string
	}{
		{
			name:  "company title pair in last literal",
			inner: `><button class="btnScrap" onclick="saveScrap('44000', 'GI', '_Acme Corp_Senior Engineer')"></button>`,
			want:  "Acme Corp",
		},
		{
			name:  "payload without underscore is a miss",
			inner: `><button class="btnScrap" onclick="saveScrap('44000', 'Acme Corp')"></button>`,
			want:  "",
		},
		{
			name:  "html escaped br marker stripped",
			inner: `><button class="btnScrap" onclick="saveScrap('1', '_Acme&lt;BR&gt;Holdings_Engineer')"></button>`,
			want:  "Acme Holdings",
		},
		{
			name:  "entity in company name decoded",
			inner: `><button class="btnScrap" onclick="saveScrap('1', '_A&amp;B Labs_Engineer')"></button>`,
			want:  "A&B Labs",
		},
		{
			name:  "no scrap button",
			inner: `><div class="description">x</div>`,
			want:  "",
		},
		{
			name:  "handler without quoted literals",
			inner: `><button class="btnScrap" onclick="noop()"></button>`,
			want:  "",
		},
		{
			name:  "blank company segment is a miss",
			inner: `><button class="btnScrap" onclick="saveScrap('__Engineer')"></button>`,
			want:  "",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			li := liFromHTML(t, tc.inner)
			require.Equal(t, tc.want, CompanyFromScrapHandler(li))
		})
	}
}
