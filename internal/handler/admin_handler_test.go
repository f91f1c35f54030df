package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/adminnotice/internal/db"
	"github.com/adminnotice/internal/hook"
	"github.com/adminnotice/web"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

func TestLogin(t *testing.T) {
	api, r := setupTestRouter(t, "")
	if err := db.EnsureUser(api.DB(), "root", "secret"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	t.Run("success", func(t *testing.T) {
		w := doPostForm(r, "/admin/login", url.Values{"username": {"root"}, "password": {"secret"}})
		if w.Code != http.StatusFound {
			t.Fatalf("expected redirect, got %d", w.Code)
		}
		if location := w.Header().Get("Location"); location != "/admin/dashboard" {
			t.Fatalf("unexpected redirect target %q", location)
		}
		if !strings.Contains(w.Header().Get("Set-Cookie"), "adminnotice_session=") {
			t.Fatal("expected session cookie to be set")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := doPostForm(r, "/admin/login", url.Values{"username": {"root"}, "password": {"nope"}})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid username or password.") {
			t.Fatalf("expected error message\n%s", w.Body.String())
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		w := doPostForm(r, "/admin/login", url.Values{"username": {"ghost"}, "password": {"secret"}})
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", w.Code)
		}
	})
}

func TestAuthAndCapabilityMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := NewAPI(setupTestDB(t), hook.NewRegistry())

	newEngine := func(role string) *gin.Engine {
		r := gin.New()
		r.SetHTMLTemplate(web.MustTemplates())
		r.Use(sessions.Sessions("adminnotice_session", cookie.NewStore([]byte("test-secret"))))
		r.Use(func(c *gin.Context) {
			if role != "" {
				session := sessions.Default(c)
				session.Set("user_id", uint(1))
				session.Set("role", role)
			}
			c.Next()
		})
		group := r.Group("/admin", AuthRequired(), CapabilityRequired(capRead))
		group.GET("/dashboard", api.ShowDashboard)
		group.GET("/plugins", CapabilityRequired(capActivatePlugins), api.ShowPlugins)
		return r
	}

	if w := doGet(newEngine(""), "/admin/dashboard"); w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected anonymous request to be redirected to login, got %d %q", w.Code, w.Header().Get("Location"))
	}

	editor := newEngine(db.RoleEditor)
	if w := doGet(editor, "/admin/dashboard"); w.Code != http.StatusOK {
		t.Fatalf("expected editor to see dashboard, got %d", w.Code)
	}
	if w := doGet(editor, "/admin/plugins"); w.Code != http.StatusForbidden {
		t.Fatalf("expected editor to be denied plugins, got %d", w.Code)
	}

	w := doGet(editor, "/admin/dashboard")
	if strings.Contains(w.Body.String(), noticeSettingsURL) {
		t.Fatal("expected settings menu to be hidden from editors")
	}

	if w := doGet(newEngine("subscriber"), "/admin/dashboard"); w.Code != http.StatusForbidden {
		t.Fatalf("expected unknown role to be denied, got %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := NewAPI(setupTestDB(t), nil)

	r := gin.New()
	r.GET("/healthz", api.HealthCheck)

	w := doGet(r, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var payload map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload["status"] != "ok" || payload["database"] != "up" {
		t.Fatalf("unexpected payload %#v", payload)
	}
}

func TestWithQuery(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "admin path", raw: "/admin/options-general?page=admin_notice", want: "/admin/options-general?page=admin_notice&settings-updated=true"},
		{name: "replaces existing flag", raw: "/admin/options-general?settings-updated=false", want: "/admin/options-general?settings-updated=true"},
		{name: "external host", raw: "https://evil.example/admin/x", want: "/admin/dashboard?settings-updated=true"},
		{name: "protocol relative", raw: "//evil.example/admin/x", want: "/admin/dashboard?settings-updated=true"},
		{name: "public path", raw: "/about", want: "/admin/dashboard?settings-updated=true"},
		{name: "empty", raw: "", want: "/admin/dashboard?settings-updated=true"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := withQuery(tc.raw, "/admin/dashboard", "settings-updated", "true"); got != tc.want {
				t.Fatalf("withQuery(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}

func TestMenuChildrenOrdering(t *testing.T) {
	menu := NewMenu()
	menu.AddSubmenuPage(MenuPage{Parent: MenuSettings, Slug: "late", Position: 100})
	menu.AddSubmenuPage(MenuPage{Parent: MenuSettings, Slug: "early", Position: 10})
	menu.AddSubmenuPage(MenuPage{Parent: MenuSettings, Slug: "later", Position: 100})
	menu.AddSubmenuPage(MenuPage{Parent: "tools", Slug: "other"})
	menu.AddSubmenuPage(MenuPage{Parent: MenuSettings, Slug: "late", Position: 100, MenuTitle: "Replaced"})

	children := menu.Children(MenuSettings)
	var slugs []string
	for _, page := range children {
		slugs = append(slugs, page.Slug)
	}
	if strings.Join(slugs, ",") != "early,late,later" {
		t.Fatalf("unexpected order %v", slugs)
	}

	page, ok := menu.Find(MenuSettings, "late")
	if !ok || page.MenuTitle != "Replaced" {
		t.Fatalf("expected replaced page, got %#v", page)
	}
	if _, ok := menu.Find(MenuSettings, "other"); ok {
		t.Fatal("expected pages of other groups to stay separate")
	}
	if got := menuPageURL(MenuPage{Parent: MenuSettings, Slug: "admin_notice"}); got != "/admin/options-general?page=admin_notice" {
		t.Fatalf("unexpected page url %q", got)
	}
}
