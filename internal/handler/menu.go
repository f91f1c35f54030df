package handler

import (
	"net/url"
	"sort"
	"sync"

	"github.com/gin-gonic/gin"
)

// MenuSettings 是后台“设置”菜单组的标识。
const MenuSettings = "options-general"

// MenuPage 描述挂在某个菜单组下的后台页面。
type MenuPage struct {
	Parent     string
	PageTitle  string
	MenuTitle  string
	Capability string
	Slug       string
	Position   int
	Render     gin.HandlerFunc
}

// Menu 保存已注册的后台子菜单页面。
type Menu struct {
	mu    sync.RWMutex
	pages []MenuPage
}

// NewMenu 创建空菜单。
func NewMenu() *Menu {
	return &Menu{}
}

// AddSubmenuPage 注册一个子菜单页面，同一组内 slug 重复时替换旧页面。
func (m *Menu) AddSubmenuPage(page MenuPage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.pages {
		if m.pages[i].Parent == page.Parent && m.pages[i].Slug == page.Slug {
			m.pages[i] = page
			return
		}
	}
	m.pages = append(m.pages, page)
}

// Find 按菜单组与 slug 查找页面。
func (m *Menu) Find(parent, slug string) (MenuPage, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, page := range m.pages {
		if page.Parent == parent && page.Slug == slug {
			return page, true
		}
	}
	return MenuPage{}, false
}

// Children 返回菜单组下的页面，按 Position 排序，相同位置保持注册顺序。
func (m *Menu) Children(parent string) []MenuPage {
	m.mu.RLock()
	defer m.mu.RUnlock()

	children := make([]MenuPage, 0, len(m.pages))
	for _, page := range m.pages {
		if page.Parent == parent {
			children = append(children, page)
		}
	}
	sort.SliceStable(children, func(i, j int) bool {
		return children[i].Position < children[j].Position
	})
	return children
}

func menuPageURL(page MenuPage) string {
	return "/admin/" + page.Parent + "?page=" + url.QueryEscape(page.Slug)
}

type menuItem struct {
	Title    string
	URL      string
	Children []menuItem
}

func (a *API) menuView(c *gin.Context) []menuItem {
	items := []menuItem{{Title: "Dashboard", URL: "/admin/dashboard"}}
	if userCan(c, capActivatePlugins) {
		items = append(items, menuItem{Title: "Plugins", URL: "/admin/plugins"})
	}

	settings := menuItem{Title: "Settings", URL: "/admin/" + MenuSettings}
	for _, page := range a.menu.Children(MenuSettings) {
		if !userCan(c, page.Capability) {
			continue
		}
		settings.Children = append(settings.Children, menuItem{Title: page.MenuTitle, URL: menuPageURL(page)})
	}
	if len(settings.Children) > 0 {
		items = append(items, settings)
	}
	return items
}
