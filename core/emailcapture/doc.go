// Package emailcapture implements the newsletter sign-up prompt.
//
// A Prompt moves between Open, Submitting and Closed. Submit validates the
// address locally, posts it with newsletter consent and the configured
// source tag, and on success schedules the prompt to close after a delay.
// A failed submission leaves the prompt Open with a generic retry message.
//
//	p := emailcapture.New(client, emailcapture.WithSource("hero_cta"))
//	res, err := p.Submit(ctx, "user@example.com")
//	if err != nil {
//		fmt.Println(emailcapture.RetryMessage)
//		return
//	}
//	fmt.Println(res.Message)
//	<-p.Closed()
package emailcapture
