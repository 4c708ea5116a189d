package app

const banner = `============== To Do List ==============
= Because we love the '80s so much!    =
========================================`

// salutation returns a time-appropriate greeting.
func salutation(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Good morning!"
	case hour >= 12 && hour < 17:
		return "Good afternoon!"
	default:
		return "Good evening!"
	}
}

func (a *App) printWelcome() {
	now := a.now()
	a.console.Println(banner)
	a.console.Println()
	a.console.Println(salutation(now.Hour()))
	a.console.Printf("Today is %s.\n", now.Format("Monday, January 2, 2006"))
}
