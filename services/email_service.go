package services

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"

	"travomine/models"

	"golang.org/x/net/html"
)

// EmailService sends quotation emails to clients.
type EmailService struct {
	host string
	port string
	user string
	pass string
	from string
}

// NewEmailService builds an email service from SMTP_* environment variables.
func NewEmailService() *EmailService {
	return &EmailService{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
}

const quotationEmailTemplate = `<html><body>
<p>Dear {{client_name}},</p>
<p>Thank you for your enquiry. Please find your quotation <b>{{quotation_no}}</b> below.</p>
<table>
<tr><td>Destination</td><td>{{place}}</td></tr>
<tr><td>Travel dates</td><td>{{travel_start}} to {{travel_end}}</td></tr>
<tr><td>Travellers</td><td>{{travelers}}</td></tr>
<tr><td>Nights</td><td>{{nights}}</td></tr>
<tr><td>Total</td><td>{{currency}} {{total}}</td></tr>
</table>
<p>This quotation is valid for 14 days. Reply to this email to confirm or request changes.</p>
<p>Kind regards,<br>{{agent_name}}</p>
</body></html>`

// convertHTMLToText converts HTML content to plain text for email sending
func convertHTMLToText(htmlContent string) string {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return htmlContent
	}

	var text strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			text.WriteString(n.Data)
		case html.ElementNode:
			switch n.Data {
			case "p", "div", "br", "h1", "h2", "h3", "table", "tr":
				text.WriteString("\n")
			case "li":
				text.WriteString("- ")
			case "td", "th":
				text.WriteString(" | ")
			}
		}

		for child := n.FirstChild; child != nil; child = child.NextSibling {
			extractText(child)
		}
	}

	extractText(doc)

	result := text.String()
	result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	return strings.TrimSpace(result)
}

func (es *EmailService) processTemplate(templateStr string, q *models.Quotation, agentName string) string {
	variables := map[string]string{
		"client_name":  q.ClientName,
		"quotation_no": q.QuotationNo,
		"place":        q.Place,
		"travel_start": q.TravelStart.Format("02 Jan 2006"),
		"travel_end":   q.TravelEnd.Format("02 Jan 2006"),
		"travelers":    fmt.Sprintf("%d", q.Travelers),
		"nights":       fmt.Sprintf("%d", q.Nights),
		"currency":     q.Currency,
		"total":        fmt.Sprintf("%.2f", q.Total),
		"agent_name":   agentName,
	}

	result := templateStr
	for key, value := range variables {
		placeholder := fmt.Sprintf("{{%s}}", key)
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return result
}

// SendQuotationEmail emails the quotation summary to the client address on
// the quotation.
func (es *EmailService) SendQuotationEmail(q *models.Quotation, agentName string) error {
	if q.ClientEmail == "" {
		return fmt.Errorf("quotation %s has no client email", q.QuotationNo)
	}

	body := convertHTMLToText(es.processTemplate(quotationEmailTemplate, q, agentName))
	subject := fmt.Sprintf("Your travel quotation %s", q.QuotationNo)

	headers := []string{
		"From: " + es.from,
		"To: " + q.ClientEmail,
		"Subject: " + subject,
		"",
		body,
	}
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n")

	auth := smtp.PlainAuth("", es.user, es.pass, es.host)
	return smtp.SendMail(es.host+":"+es.port, auth, es.from, []string{q.ClientEmail}, msg)
}
