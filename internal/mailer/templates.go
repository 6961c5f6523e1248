package mailer

import (
	"fmt"
	"html"
)

func clinicBody(sub Submission) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>%s</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #dddddd; border-radius: 5px; background-color: #ffffff;">
    <div style="text-align: center; border-bottom: 1px solid #dddddd; padding-bottom: 20px;">
      <h1 style="margin: 0; color: black;">Patient Consent Form Submission</h1>
    </div>
    <div style="padding: 20px; color: black;">
      <h2 style="margin-top: 0;">New Consent Form Received</h2>
      <p>A new patient consent form has been submitted with the following details:</p>
      <ul>
        <li><strong>Patient Name:</strong> %s</li>
        <li><strong>Patient Email:</strong> %s</li>
        <li><strong>Submission Date:</strong> %s</li>
        <li><strong>Submission Time:</strong> %s</li>
      </ul>
      <p>The completed consent form is attached to this email as a PDF file.</p>
      <p>Please process this form according to standard procedures and add it to the patient's records.</p>
      <p>If you notice any issues with the form or require additional information, please contact the patient directly.</p>
    </div>
    <div style="text-align: center; border-top: 1px solid #dddddd; padding-top: 20px; font-size: 12px; color: #888888;">
      <p>This is an automated message from the patient consent form system.</p>
    </div>
  </div>
</body>
</html>`,
		clinicSubject,
		html.EscapeString(sub.PatientName),
		html.EscapeString(sub.PatientEmail),
		sub.SubmittedAt.Format("January 02, 2006"),
		sub.SubmittedAt.Format("15:04"),
	)
}

func patientBody(sub Submission) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8" /><title>Confirmation Email</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #dddddd; border-radius: 5px; background-color: #ffffff;">
    <div style="text-align: center; border-bottom: 1px solid #dddddd; padding-bottom: 20px;">
      <h1 style="margin: 0; color: black;">Confirmation Email</h1>
    </div>
    <div style="padding: 20px; color: black;">
      <h2 style="margin-top: 0;">Dear %s,</h2>
      <p>Thanks for filling out the consent form. We appreciate your time and effort
      in providing us with your information and consent.</p>
      <p>Thank you for choosing our clinic.</p>
    </div>
    <div style="text-align: center; border-top: 1px solid #dddddd; padding-top: 20px; font-size: 12px; color: #888888;">
      <p>This is an automated message, please do not reply.</p>
    </div>
  </div>
</body>
</html>`,
		html.EscapeString(sub.PatientName),
	)
}
