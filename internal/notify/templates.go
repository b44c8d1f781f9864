package notify

import (
	"bytes"
	"fmt"
	"html/template"
)

// 邮件模板
var emailTemplates = template.Must(template.New("approval_request").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>{{.NgoName}} 收到了您的捐赠</h2>
  <p>{{.DonorName}} 您好，</p>
  {{if .ResourceDesc}}
  <p>我们记录了您捐赠的物资：{{.ResourceDesc}}。</p>
  {{else}}
  <p>我们记录了您 {{.Currency}} {{printf "%.2f" .Amount}} 的捐赠。</p>
  {{end}}
  <p>请点击下方链接确认本次捐赠：</p>
  <p><a href="{{.ApprovalLink}}">确认捐赠</a></p>
  <p>如非本人操作请忽略本邮件。</p>
</div>`))

func init() {
	template.Must(emailTemplates.New("approval_result").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>捐赠确认结果</h2>
  <p>{{.DonorName}} 您好，</p>
  <p>您向 {{.NgoName}} 的捐赠已于 {{.Date}} {{if eq .Decision "approved"}}确认{{else}}拒绝{{end}}。</p>
  <p>感谢您的支持！</p>
</div>`))

	template.Must(emailTemplates.New("donation_receipt").Parse(`
<div style="font-family:sans-serif;max-width:600px;margin:0 auto">
  <h2>感谢您的捐赠</h2>
  <p>{{.DonorName}} 您好，</p>
  <p>您向 {{.NgoName}} 捐赠的 {{.Currency}} {{printf "%.2f" .Amount}} 已于 {{.Date}} 到账。</p>
  <p>感谢您的支持！</p>
</div>`))
}

// RenderEmail 渲染邮件HTML正文
func RenderEmail(data TemplateData) (string, error) {
	var buf bytes.Buffer
	if err := emailTemplates.ExecuteTemplate(&buf, data.Template, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// EmailSubject 根据模板生成邮件主题
func EmailSubject(data TemplateData) string {
	switch data.Template {
	case "approval_request":
		return fmt.Sprintf("请确认您向 %s 的捐赠", data.NgoName)
	case "approval_result":
		return "捐赠确认结果"
	default:
		return fmt.Sprintf("感谢您向 %s 的捐赠", data.NgoName)
	}
}

// RenderText 渲染短信/WhatsApp纯文本正文
func RenderText(data TemplateData) string {
	if data.Body != "" {
		return data.Body
	}

	switch data.Template {
	case "approval_request":
		if data.ResourceDesc != "" {
			return fmt.Sprintf("%s 您好，%s 记录了您捐赠的物资（%s），请访问 %s 确认。",
				data.DonorName, data.NgoName, data.ResourceDesc, data.ApprovalLink)
		}
		return fmt.Sprintf("%s 您好，%s 记录了您 %s %.2f 的捐赠，请访问 %s 确认。",
			data.DonorName, data.NgoName, data.Currency, data.Amount, data.ApprovalLink)
	case "approval_result":
		return fmt.Sprintf("%s 您好，您向 %s 的捐赠已处理，结果：%s。", data.DonorName, data.NgoName, data.Decision)
	default:
		return fmt.Sprintf("%s 您好，感谢您于 %s 向 %s 捐赠 %s %.2f。",
			data.DonorName, data.Date, data.NgoName, data.Currency, data.Amount)
	}
}
