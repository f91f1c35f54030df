package locale

// Pick returns the text matching the request language, defaulting to English.
func Pick(language, english, chinese string) string {
	if NormalizeLanguage(language) == LanguageChinese {
		if chinese != "" {
			return chinese
		}
		return english
	}
	if english != "" {
		return english
	}
	return chinese
}

var chineseText = table([][2]string{
	{"Admin Notice", "后台通知"},
	{"Dashboard", "仪表盘"},
	{"Enable", "启用"},
	{"Enable Notice", "启用通知"},
	{"Error", "错误"},
	{"Info", "信息"},
	{"Log In", "登录"},
	{"Log Out", "退出"},
	{"Message", "消息"},
	{"Password", "密码"},
	{"Plugins", "插件"},
	{"Save", "保存"},
	{"Settings", "设置"},
	{"Settings saved.", "设置已保存。"},
	{"Style", "样式"},
	{"Success", "成功"},
	{"Username", "用户名"},
	{"Warning", "警告"},
	{"Welcome", "欢迎"},
	{"Invalid username or password.", "用户名或密码错误。"},
	{"Failed to save the session.", "会话保存失败。"},
	{"Failed to load settings.", "加载设置失败。"},
	{"Failed to save settings.", "保存设置失败。"},
	{"The link you followed has expired.", "链接已过期，请刷新页面后重试。"},
	{"Sorry, you are not allowed to access this page.", "抱歉，您无权访问此页面。"},
	{"Sorry, you are not allowed to manage options for this site.", "抱歉，您无权管理站点设置。"},
	{"Options page not found.", "未找到设置页面。"},
	{"Plugin", "插件"},
	{"Description", "描述"},
	{"Version", "版本"},
	{"By", "作者"},
})

func table(pairs [][2]string) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		m[pair[0]] = pair[1]
	}
	return m
}

// T looks up the translation of an English UI string, falling back to the original text.
func T(language, english string) string {
	return Pick(language, english, chineseText[english])
}
