package notification

import "fmt"

// Email bodies are deliberately plain: short HTML that survives every mail
// client.

func paymentSentBody(name, recipientName, reference string, amount, fee, newBalance float64) string {
	return fmt.Sprintf(`
		<h2>Payment Sent</h2>
		<p>Hi %s,</p>
		<p>You sent <strong>NGN %.2f</strong> to %s (fee NGN %.2f).</p>
		<p>Reference: %s<br>New balance: NGN %.2f</p>`,
		name, amount, recipientName, fee, reference, newBalance)
}

func paymentReceivedBody(name, senderName, reference string, amount float64) string {
	return fmt.Sprintf(`
		<h2>Payment Received</h2>
		<p>Hi %s,</p>
		<p>You received <strong>NGN %.2f</strong> from %s.</p>
		<p>Reference: %s</p>`,
		name, amount, senderName, reference)
}

func topUpBody(name, reference string, amount, newBalance float64) string {
	return fmt.Sprintf(`
		<h2>Wallet Top-up</h2>
		<p>Hi %s,</p>
		<p>Your wallet was credited with <strong>NGN %.2f</strong>.</p>
		<p>Reference: %s<br>New balance: NGN %.2f</p>`,
		name, amount, reference, newBalance)
}

func withdrawalBody(name, reference string, amount, fee, newBalance float64) string {
	return fmt.Sprintf(`
		<h2>Withdrawal</h2>
		<p>Hi %s,</p>
		<p>You withdrew <strong>NGN %.2f</strong> (fee NGN %.2f).</p>
		<p>Reference: %s<br>New balance: NGN %.2f</p>`,
		name, amount, fee, reference, newBalance)
}

func verificationBody(name, otp string) string {
	return fmt.Sprintf(`
		<h2>Verify your account</h2>
		<p>Hi %s,</p>
		<p>Your verification code is <strong>%s</strong>. It expires in 10 minutes.</p>
		<p>If you did not create an account, ignore this email.</p>`,
		name, otp)
}
