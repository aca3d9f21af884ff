package webdispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidName(t *testing.T) {
	tests := map[string]struct {
		name  string
		valid bool
	}{
		"type name":        {"Articles", true},
		"single upper":     {"A", true},
		"camel case":       {"BlogPosts", true},
		"non-ascii upper":  {"Ärzte", true},
		"empty":            {"", false},
		"lower first":      {"articles", false},
		"digit first":      {"1Articles", false},
		"underscore first": {"_Articles", false},
		"forward slash":    {"Admin/Articles", false},
		"backslash":        {`App\Controller\Articles`, false},
		"dot":              {"Blog.Posts", false},
		"traversal":        {"../Articles", false},
		"upper then slash": {"Articles/../Secret", false},
		"trailing dot":     {"Articles.", false},
		"mixed case":       {"ArticlesIndex", true},
		"circled letter":   {"Ⓐrticles", false},
		"roman numeral":    {"Ⅻ", false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidName(tt.name))
		})
	}
}

func TestNamespace(t *testing.T) {
	tests := map[string]struct {
		prefix string
		want   string
	}{
		"empty":              {"", "Controller"},
		"single":             {"admin", "Controller/Admin"},
		"already camel":      {"Admin", "Controller/Admin"},
		"underscored":        {"admin_panel", "Controller/AdminPanel"},
		"nested":             {"admin/api", "Controller/Admin/Api"},
		"nested capitalized": {"Admin/Api", "Controller/Admin/Api"},
		"nested underscored": {"my_admin/v1_api", "Controller/MyAdmin/V1Api"},
		"hyphenated":         {"admin-panel", "Controller/Admin-panel"},
		"nested punctuation": {"o'neil/v2api", "Controller/O'neil/V2api"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespace(tt.prefix))
		})
	}
}

func TestCamelize(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"admin":       "Admin",
		"admin_panel": "AdminPanel",
		"api_V2":      "ApiV2",
		"AdminPanel":  "AdminPanel",
		"blog_posts_": "BlogPosts",
		"admin-panel": "Admin-panel",
		"o'neil":      "O'neil",
		"v2api":       "V2api",
		"api.v1":      "Api.v1",
		"x1y":         "X1y",
		"admin panel": "AdminPanel",
		"tab\tword":   "Tab\tword",
		"__éclair":    "Éclair",
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, Camelize(in))
		})
	}
}

func TestBuildIdentifier(t *testing.T) {
	t.Run("handler without prefix or plugin", func(t *testing.T) {
		id, err := BuildIdentifier(NewParams(map[string]string{
			ParamController: "Articles",
		}, "5"))

		require.NoError(t, err)
		assert.Equal(t, Identifier{Name: "Articles", Namespace: "Controller"}, id)
		assert.Equal(t, "Articles", id.Lookup())
		assert.Equal(t, "Controller/Articles", id.String())
	})

	t.Run("nested prefix is camelized per segment", func(t *testing.T) {
		id, err := BuildIdentifier(NewParams(map[string]string{
			ParamController: "Users",
			ParamPrefix:     "Admin/Api",
		}))

		require.NoError(t, err)
		assert.Equal(t, "Controller/Admin/Api", id.Namespace)
	})

	t.Run("plugin prefixes the lookup name", func(t *testing.T) {
		id, err := BuildIdentifier(NewParams(map[string]string{
			ParamController: "Posts",
			ParamPlugin:     "Blog",
			ParamPrefix:     "admin",
		}))

		require.NoError(t, err)
		assert.Equal(t, "Blog.Posts", id.Lookup())
		assert.Equal(t, "Controller/Admin", id.Namespace)
		assert.Equal(t, "Blog.Controller/Admin/Posts", id.String())
	})

	t.Run("rejected name reports raw request values", func(t *testing.T) {
		_, err := BuildIdentifier(NewParams(map[string]string{
			ParamController: "articles",
			ParamPlugin:     "blog",
			ParamPrefix:     "admin/api",
			ParamExt:        "json",
		}))

		var missing *MissingHandlerError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, &MissingHandlerError{
			Handler: "articles",
			Plugin:  "blog",
			Prefix:  "admin/api",
			Ext:     "json",
		}, missing)
	})

	t.Run("every rejected name yields the same error shape", func(t *testing.T) {
		for _, name := range []string{"", "articles", "Blog.Posts", "Admin/Posts", `App\Posts`} {
			_, err := BuildIdentifier(NewParams(map[string]string{ParamController: name}))
			assert.ErrorIs(t, err, ErrMissingHandler, name)
			assert.IsType(t, &MissingHandlerError{}, err, name)
		}
	})
}
