package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"restoapi/internal/model"
)

// BookingInfo is the data shown in booking emails.
type BookingInfo struct {
	CustomerName string
	Date         string
	Time         string
	TableNumber  string
	GuestCount   int
}

const signature = `
Trân trọng.
[Maison de Flavor]`

const bookingDetails = `- Ngày: {{.Date}}
- Giờ: {{.Time}}
- Bàn: {{.TableNumber}}
- Số khách: {{.GuestCount}}
`

type bookingTemplate struct {
	subject string
	body    *template.Template
}

func newBookingTemplate(subject, intro, outro string) bookingTemplate {
	text := "Xin chào {{.CustomerName}},\n\n" + intro + "\n" + bookingDetails
	if outro != "" {
		text += "\n" + outro + "\n"
	}
	text += signature
	return bookingTemplate{subject: subject, body: template.Must(template.New(subject).Parse(text))}
}

var bookingTemplates = map[model.BookingStatus]bookingTemplate{
	model.BookingPending: newBookingTemplate(
		"Tiếp nhận yêu cầu đặt bàn",
		"Chúng tôi đã tiếp nhận yêu cầu đặt bàn của Quý khách và đang xử lý:",
		"Chúng tôi sẽ sớm phản hồi xác nhận hoặc đề xuất phương án thay thế.",
	),
	model.BookingConfirmed: newBookingTemplate(
		"Xác nhận đặt bàn",
		"Yêu cầu đặt bàn của Quý khách đã được xác nhận:",
		"Chúng tôi rất hân hạnh được phục vụ Quý khách.",
	),
	model.BookingCancelled: newBookingTemplate(
		"Hủy đặt bàn",
		"Rất tiếc, yêu cầu đặt bàn của Quý khách đã bị từ chối trong khung giờ đã chọn.",
		"Rất mong Quý khách thông cảm. Xin vui lòng chọn khung giờ khác hoặc liên hệ để được hỗ trợ.",
	),
	model.BookingCompleted: newBookingTemplate(
		"Cảm ơn Quý khách",
		"Cảm ơn Quý khách đã dùng bữa tại nhà hàng chúng tôi. Rất mong được phục vụ Quý khách trong lần tới!",
		"",
	),
	model.BookingNoShow: newBookingTemplate(
		"Lịch đặt bàn đã hết hiệu lực",
		"Quý khách đã không đến theo lịch đặt bàn dưới đây nên bàn đã được giải phóng:",
		"Nếu cần, Quý khách vui lòng đặt lại khung giờ khác.",
	),
}

// BookingMessage renders the email for a booking entering status. ok is false
// for statuses that send nothing.
func BookingMessage(to string, status model.BookingStatus, info BookingInfo) (msg Message, ok bool, err error) {
	tpl, found := bookingTemplates[status]
	if !found {
		return Message{}, false, nil
	}
	if info.TableNumber == "" {
		info.TableNumber = "Chưa xếp"
	}
	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, info); err != nil {
		return Message{}, false, fmt.Errorf("render %s email: %w", status, err)
	}
	return Message{To: to, Subject: tpl.subject, Text: buf.String()}, true, nil
}

var resetTemplate = template.Must(template.New("reset").Parse(`Xin chào {{.Username}},

Chúng tôi nhận được yêu cầu đặt lại mật khẩu cho tài khoản của Quý khách.
Vui lòng truy cập liên kết sau trong vòng 1 giờ:

{{.Link}}

Nếu Quý khách không yêu cầu, hãy bỏ qua email này.
` + signature))

// PasswordResetMessage renders the reset email containing link.
func PasswordResetMessage(to, username, link string) (Message, error) {
	var buf bytes.Buffer
	if err := resetTemplate.Execute(&buf, map[string]string{"Username": username, "Link": link}); err != nil {
		return Message{}, fmt.Errorf("render reset email: %w", err)
	}
	return Message{To: to, Subject: "Đặt lại mật khẩu", Text: buf.String()}, nil
}
