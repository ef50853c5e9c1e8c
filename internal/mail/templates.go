package mail

import (
	"html/template"

	"github.com/hyjain/hyjain-api/internal/model"
)

// messageTemplate describes one notification email.
type messageTemplate struct {
	subject string
	body    *template.Template
}

const signupBody = `<div style="font-family: Arial, sans-serif; line-height: 1.6;"><h2>Welcome to {{.Brand}}!</h2><p>Hello <b>{{.Name}}</b>,</p><p>Your account was successfully created.</p><hr style="border:0; border-top:1px solid #eee;"><p style="color:#555; font-size:0.9em;"><strong>Time:</strong> {{.Timestamp}}<br><strong>Approx. Location:</strong> {{.Location}} (from IP: {{.IP}})</p><hr style="border:0; border-top:1px solid #eee;"><br><p>Best regards,</p><p><b>The {{.Brand}} Team</b></p></div>`

const loginBody = `<div style="font-family: Arial, sans-serif; line-height: 1.6;"><h2>Successful Login to Your Account</h2><p>Hello <b>{{.Name}}</b>,</p><p>We're just letting you know that there has been a successful login to your {{.Brand}} account.</p><div style="background-color:#f7f7f7; padding:15px; border-radius:5px; margin:20px 0;"><h4 style="margin-top:0;">Login Details:</h4><p style="margin:5px 0;"><strong>Time:</strong> {{.Timestamp}}</p><p style="margin:5px 0;"><strong>Approx. Location:</strong> {{.Location}} (from IP: {{.IP}})</p></div><p>If you do not recognize this activity, please change your password immediately.</p><br><p>Best regards,</p><p><b>The {{.Brand}} Team</b></p></div>`

const enquiryBody = `
<div style="font-family: Arial, sans-serif; line-height: 1.6; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="color: #2c3e50;">Thank You for Reaching Out!</h2>
  <p>Hello <b>{{.Name}}</b>,</p>
  <p>This email is to confirm that we have successfully received your enquiry. Our team is now reviewing the details you provided.</p>
  <p>We appreciate your interest and will get back to you as soon as possible with a response.</p>
  <br>
  <p>Best regards,</p>
  <p><b>The {{.Brand}} Team</b></p>
</div>`

const feedbackBody = `
<div style="font-family: Arial, sans-serif; line-height: 1.6; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;">
  <h2 style="color: #2c3e50;">We Appreciate You!</h2>
  <p>Hello <b>{{.Name}}</b>,</p>
  <p>Thank you so much for taking the time to send us your valuable feedback.</p>
  <p>Your insights help us improve and continue to provide the best possible experience. We've taken note of your comments and will use them to grow.</p>
  <br>
  <p>Best regards,</p>
  <p><b>The {{.Brand}} Team</b></p>
</div>`

const subscriptionBody = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: auto; padding: 20px; border: 1px solid #ddd; border-radius: 10px;"><h2 style="color: #2c3e50; text-align: center;">Welcome to the {{.Brand}} Family! 👋</h2><p style="font-size: 16px; color: #34495e;">Hello there,</p><p style="font-size: 16px; color: #34495e;">Thank you for connecting with us and subscribing to our newsletter! We're so excited to have you with us.</p><p style="font-size: 16px; color: #34495e;">You can look forward to receiving updates on our latest products, exclusive offers, and news from the {{.Brand}} team directly in your inbox.</p><br><p style="font-size: 16px; color: #34495e;">Stay tuned!</p><p style="font-size: 16px; color: #34495e;">Best regards,<br><b>The {{.Brand}} Team</b></p></div>`

var templates = map[model.NotificationKind]messageTemplate{
	model.NotificationSignup: {
		subject: "Welcome to {{.Brand}}! ✔",
		body:    template.Must(template.New("signup").Parse(signupBody)),
	},
	model.NotificationLogin: {
		subject: "Security Alert: New Login to Your {{.Brand}} Account",
		body:    template.Must(template.New("login").Parse(loginBody)),
	},
	model.NotificationEnquiry: {
		subject: "We've Received Your Enquiry | {{.Brand}}",
		body:    template.Must(template.New("enquiry").Parse(enquiryBody)),
	},
	model.NotificationFeedback: {
		subject: "Thank You for Your Feedback! | {{.Brand}}",
		body:    template.Must(template.New("feedback").Parse(feedbackBody)),
	},
	model.NotificationSubscription: {
		subject: "✨ Welcome to the {{.Brand}} Family!",
		body:    template.Must(template.New("subscription").Parse(subscriptionBody)),
	},
}
