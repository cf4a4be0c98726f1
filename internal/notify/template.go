package notify

import (
	"fmt"
	"html/template"
	"strings"
)

// DownloadLink is a single rendered deliverable.
type DownloadLink struct {
	Label string
	URL   string
}

type orderEmailData struct {
	StoreName string
	Number    string
	Links     []DownloadLink
}

type resetEmailData struct {
	StoreName string
	ResetURL  string
}

var orderCompletedTemplate = template.Must(template.New("order_completed").Parse(`<table width="640" style="border-collapse: collapse; margin: 0 auto; font-family: Roboto, sans-serif; background: #141316;">
  <tbody>
    <tr>
      <td style="padding: 40px 40px 0 40px;">
        <h2 style="color: #FFF; font-size: 24px; font-weight: 700; margin-bottom: 40px;">Your {{.StoreName}} Order is Ready! - #{{.Number}}</h2>
        <p style="color: #808080; font-size: 16px;">Dear customer,</p>
        <p style="color: #808080; font-size: 16px;">Thank you for your purchase from {{.StoreName}}! Your order has been successfully processed, and your files are now ready for download.</p>
        <h3 style="color: #FFF; font-size: 16px; font-weight: 700; margin: 40px 0 20px 0;">Download Your Files Here:</h3>
{{- range .Links}}
        <a href="{{.URL}}" style="color: #0C0B0E; font-size: 16px; font-weight: 500; padding: 16px 24px; border-radius: 16px; background: #FFF; display: block; text-decoration: none; text-align: center; margin-bottom: 10px;">Download {{.Label}}</a>
{{- end}}
      </td>
    </tr>
    <tr>
      <td style="padding: 40px;">
        <p style="color: #808080; font-size: 16px;">If you have trouble accessing your files or need further assistance, don't hesitate to contact us - we're here to help!</p>
        <h3 style="color: #FFF; font-size: 16px; font-weight: 700; margin: 40px 0 20px 0;">Best regards,<br>The {{.StoreName}} Team</h3>
      </td>
    </tr>
  </tbody>
</table>`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<table width="640" style="border-collapse: collapse; margin: 0 auto; font-family: Roboto, sans-serif;">
  <tbody>
    <tr>
      <td style="padding: 36px; border-radius: 16px; background: #D4DDD7; color: #0A0A0A;">
        <h2 style="text-align: left; font-size: 20px;">Dear user,</h2>
        <p style="font-size: 16px;">We received a request to reset your password. Click the link below to create a new one:</p>
        <p style="margin: 24px 0;">
          <a href="{{.ResetURL}}" style="color: #FFF; font-size: 20px; padding: 10px 24px; background: #2B2B2B; border-radius: 40px; text-decoration: none;">Reset Password</a>
        </p>
        <p style="font-size: 16px;">If you didn't request this, you can ignore this email. Your current password will remain unchanged.</p>
        <p style="font-size: 16px; font-weight: 600;">Best regards,<br>The {{.StoreName}} Team</p>
      </td>
    </tr>
  </tbody>
</table>`))

func renderOrderCompleted(storeName, number string, links []DownloadLink) (string, error) {
	var b strings.Builder
	err := orderCompletedTemplate.Execute(&b, orderEmailData{StoreName: storeName, Number: number, Links: links})
	if err != nil {
		return "", fmt.Errorf("render order email: %w", err)
	}
	return b.String(), nil
}

func renderPasswordReset(storeName, resetURL string) (string, error) {
	var b strings.Builder
	err := passwordResetTemplate.Execute(&b, resetEmailData{StoreName: storeName, ResetURL: resetURL})
	if err != nil {
		return "", fmt.Errorf("render reset email: %w", err)
	}
	return b.String(), nil
}
