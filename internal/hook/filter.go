// Package hook 提供带类型的扩展点：外部代码可以在值被使用前拦截并修改它。
package hook

import "sync"

const (
	// NoticeEnable 在渲染管理通知前过滤启用状态。
	NoticeEnable = "admin_notice_enable"
	// PluginActionLinks 过滤插件列表中某个插件的操作链接。
	PluginActionLinks = "plugin_action_links"
)

// Filter 是一个具名的过滤链。回调按注册顺序执行，每个回调接收上一个回调的返回值。
type Filter[T any] struct {
	name      string
	mu        sync.RWMutex
	callbacks []func(T) T
}

// NewFilter 创建名为 name 的空过滤链。
func NewFilter[T any](name string) *Filter[T] {
	return &Filter[T]{name: name}
}

// Name 返回扩展点名称。
func (f *Filter[T]) Name() string {
	return f.name
}

// Add 在链尾追加回调，nil 回调会被忽略。
func (f *Filter[T]) Add(fn func(T) T) {
	if fn == nil {
		return
	}
	f.mu.Lock()
	f.callbacks = append(f.callbacks, fn)
	f.mu.Unlock()
}

// Len 返回已注册的回调数量。
func (f *Filter[T]) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.callbacks)
}

// Apply 依次执行所有回调并返回最终值；没有回调时原样返回。
func (f *Filter[T]) Apply(value T) T {
	f.mu.RLock()
	callbacks := make([]func(T) T, len(f.callbacks))
	copy(callbacks, f.callbacks)
	f.mu.RUnlock()

	for _, fn := range callbacks {
		value = fn(value)
	}
	return value
}

// ActionLink 是插件列表中显示的一个操作链接。
type ActionLink struct {
	Label string
	URL   string
}

// Registry 汇总应用暴露的全部扩展点。
type Registry struct {
	NoticeEnable *Filter[bool]
	ActionLinks  *Filter[[]ActionLink]
}

// NewRegistry 创建一组空的扩展点。
func NewRegistry() *Registry {
	return &Registry{
		NoticeEnable: NewFilter[bool](NoticeEnable),
		ActionLinks:  NewFilter[[]ActionLink](PluginActionLinks),
	}
}
