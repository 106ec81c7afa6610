package model

import "strings"

// ContactConfig 紧急联系人与发件配置。升级告警逻辑只读它，写入走设置接口。
// Credential 来自独立的密钥存储，不和其余字段同源。
type ContactConfig struct {
	ContactEmails [3]string
	SenderEmail   string
	Credential    string
	SMTPHost      string
}

// Recipients 返回去空白、去重后的收件人列表，保持配置顺序
func (c ContactConfig) Recipients() []string {
	seen := make(map[string]bool, len(c.ContactEmails))
	out := make([]string, 0, len(c.ContactEmails))

	for _, addr := range c.ContactEmails {
		addr = strings.TrimSpace(addr)
		if addr == "" || seen[addr] {
			continue
		}
		seen[addr] = true
		out = append(out, addr)
	}
	return out
}

// Complete 发件人和至少一个收件人都配置了才算完整；
// 不完整时升级告警按"无事可做"成功处理，不算错误
func (c ContactConfig) Complete() bool {
	return strings.TrimSpace(c.SenderEmail) != "" && len(c.Recipients()) > 0
}

// UpdateContactsRequest 保存联系人设置请求
type UpdateContactsRequest struct {
	ContactEmail  string `json:"contact_email"`
	ContactEmail2 string `json:"contact_email_2"`
	ContactEmail3 string `json:"contact_email_3"`
	SenderEmail   string `json:"sender_email"`
	SenderSecret  string `json:"sender_secret"`
	SMTPHost      string `json:"smtp_host"`
}

// ContactSettingsView 查询联系人设置响应，凭证永不回显
type ContactSettingsView struct {
	ContactEmail  string `json:"contact_email"`
	ContactEmail2 string `json:"contact_email_2"`
	ContactEmail3 string `json:"contact_email_3"`
	SenderEmail   string `json:"sender_email"`
	SMTPHost      string `json:"smtp_host"`
	HasCredential bool   `json:"has_credential"`
}
