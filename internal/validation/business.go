package validation

// Registration validates a sign-up request.
func (v *Validator) Registration(username, email, phone, password, name string) {
	v.Required("username", username)
	v.MaxLen("username", username, MaxUsernameLength)
	v.Email("email", email)
	v.Phone("phone", phone)
	v.Password("password", password)
	v.Required("name", name)
	v.MaxLen("name", name, MaxNameLength)
}

// Transfer validates a transfer request.
func (v *Validator) Transfer(recipientWalletID string, amount float64, note string) {
	v.WalletID("recipientWalletId", recipientWalletID)
	v.Range("amount", amount, MinTransactionAmount, MaxTransactionAmount)
	v.MaxLen("note", note, MaxNoteLength)
}

// TopUp validates a top-up request.
func (v *Validator) TopUp(amount float64) {
	v.Range("amount", amount, MinTransactionAmount, MaxTopUpAmount)
}
