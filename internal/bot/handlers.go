package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/preplab/internal/export"
	"github.com/example/preplab/internal/planner"
	"github.com/example/preplab/internal/profession"
	"github.com/example/preplab/internal/sqlpractice"
	"github.com/example/preplab/internal/util"
	"github.com/example/preplab/pkg/models"
)

// resolveUser loads (or creates) the tracker user behind a Telegram account
func (b *Bot) resolveUser(ctx context.Context, from *tgbotapi.User) (*models.User, error) {
	return b.userRepo.GetOrCreateByTelegramID(ctx, from.ID, from.UserName, from.FirstName)
}

// handleStart greets the user and runs onboarding if needed
func (b *Bot) handleStart(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		b.reply(message.Chat.ID, "Could not load your profile. Please try again.")
		return
	}

	if user.Profession == "" {
		var rows [][]tgbotapi.InlineKeyboardButton
		options := profession.Options()
		for i := 0; i < len(options); i += 2 {
			row := []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData(options[i].Label, "prof:"+options[i].ID),
			}
			if i+1 < len(options) {
				row = append(row, tgbotapi.NewInlineKeyboardButtonData(options[i+1].Label, "prof:"+options[i+1].ID))
			}
			rows = append(rows, row)
		}
		b.replyWithKeyboard(message.Chat.ID,
			"Welcome! What are you interviewing for? I'll set up default practice tags for it.",
			tgbotapi.NewInlineKeyboardMarkup(rows...))
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("Welcome back! You're set up for %s. Try /plan or /help.",
		profession.Label(user.Profession)))
}

// handleCallback routes inline keyboard presses
func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Inline-mode results and expired messages arrive without a Message
	if callback == nil || callback.Message == nil || callback.From == nil {
		return
	}

	// Acknowledge the press so the client stops the spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		log.Printf("Error answering callback: %v", err)
	}

	user, err := b.resolveUser(ctx, callback.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}
	chatID := callback.Message.Chat.ID

	data := callback.Data
	switch {
	case strings.HasPrefix(data, "prof:"):
		b.completeOnboarding(ctx, chatID, user, strings.TrimPrefix(data, "prof:"))
	case strings.HasPrefix(data, "plan:add:"):
		b.addSuggestedTask(ctx, chatID, user, strings.TrimPrefix(data, "plan:add:"))
	case strings.HasPrefix(data, "task:done:"):
		b.setTaskCompleted(ctx, chatID, user, strings.TrimPrefix(data, "task:done:"), true)
	case strings.HasPrefix(data, "task:undo:"):
		b.setTaskCompleted(ctx, chatID, user, strings.TrimPrefix(data, "task:undo:"), false)
	case strings.HasPrefix(data, "sql:"):
		b.startSQLQuestion(ctx, chatID, callback.From.ID, strings.TrimPrefix(data, "sql:"))
	}
}

// completeOnboarding stores the profession and seeds its default tags
func (b *Bot) completeOnboarding(ctx context.Context, chatID int64, user *models.User, professionID string) {
	if !profession.IsValid(professionID) {
		b.reply(chatID, "Unknown profession. Try /start again.")
		return
	}

	if err := b.userRepo.UpdateProfession(ctx, user.ID, professionID); err != nil {
		log.Printf("Error updating profession: %v", err)
		b.reply(chatID, "Could not save your choice. Please try again.")
		return
	}

	created, err := b.tagRepo.SeedDefaults(ctx, user.ID, profession.DefaultTagsFor(professionID))
	if err != nil {
		log.Printf("Error seeding tags: %v", err)
		b.reply(chatID, "Could not create your default tags. Please try again.")
		return
	}

	b.reply(chatID, fmt.Sprintf("%s it is. Created %d practice tags — see /tags, then /plan for today's suggestions.",
		profession.Label(professionID), created))
}

// handlePlan shows the suggested sessions for today
func (b *Bot) handlePlan(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		b.reply(message.Chat.ID, "Could not load your profile. Please try again.")
		return
	}

	suggestions, err := b.planner.SuggestedPlanForDate(ctx, user.ID, time.Now())
	if err != nil {
		log.Printf("Error building plan for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your plan. Please try again.")
		return
	}

	if len(suggestions) == 0 {
		tags, err := b.tagRepo.ListByUser(ctx, user.ID)
		if err == nil && len(tags) == 0 {
			b.reply(message.Chat.ID, "No tags yet. Run /start to pick a profession, or /newtag to add your own.")
			return
		}
		b.reply(message.Chat.ID, "Everything is already planned for today. Nice.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Suggested for today (staleness first, then least recent time):\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, s := range suggestions {
		sb.WriteString(fmt.Sprintf("%d. %s — %d min\n", i+1, s.TagName, s.SuggestedMinutes))
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("Add "+s.TagName, fmt.Sprintf("plan:add:%d", s.TagID)),
		})
	}
	sb.WriteString("\nTap to add a session, then /today to work through them.")
	b.replyWithKeyboard(message.Chat.ID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// addSuggestedTask creates a task for today from a plan suggestion
func (b *Bot) addSuggestedTask(ctx context.Context, chatID int64, user *models.User, tagIDText string) {
	tagID, err := strconv.ParseInt(tagIDText, 10, 64)
	if err != nil {
		return
	}
	tag, err := b.tagRepo.GetByID(ctx, user.ID, tagID)
	if err != nil {
		log.Printf("Error loading tag: %v", err)
		return
	}
	if tag == nil {
		b.reply(chatID, "That tag no longer exists.")
		return
	}

	duration := planner.SuggestedMinutesPerSession
	task := &models.Task{
		UserID:          user.ID,
		Title:           tag.Name + " practice",
		DurationMinutes: &duration,
		ScheduledAt:     time.Now(),
	}
	if err := b.taskRepo.Create(ctx, task, []int64{tag.ID}); err != nil {
		log.Printf("Error creating task: %v", err)
		b.reply(chatID, "Could not add the session. Please try again.")
		return
	}

	b.reply(chatID, fmt.Sprintf("Added: %s (%d min) for today.", task.Title, duration))
}

// handleToday lists today's sessions with completion toggles
func (b *Bot) handleToday(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		b.reply(message.Chat.ID, "Could not load your profile. Please try again.")
		return
	}

	tasks, err := b.taskRepo.ListByUserAndDate(ctx, user.ID, time.Now())
	if err != nil {
		log.Printf("Error loading today's tasks: %v", err)
		b.reply(message.Chat.ID, "Could not load today's sessions. Please try again.")
		return
	}
	if len(tasks) == 0 {
		b.reply(message.Chat.ID, "Nothing planned for today. See /plan for suggestions.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Today's sessions:\n")
	var rows [][]tgbotapi.InlineKeyboardButton
	for i, task := range tasks {
		if i == b.config.MaxTasksShown {
			sb.WriteString(fmt.Sprintf("...and %d more\n", len(tasks)-i))
			break
		}
		mark := "○"
		if task.IsCompleted() {
			mark = "✓"
		}
		sb.WriteString(fmt.Sprintf("%s %s (%d min)\n", mark, task.Title, task.Duration()))
		if task.IsCompleted() {
			rows = append(rows, []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData("Undo "+task.Title, fmt.Sprintf("task:undo:%d", task.ID)),
			})
		} else {
			rows = append(rows, []tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData("Done "+task.Title, fmt.Sprintf("task:done:%d", task.ID)),
			})
		}
	}
	b.replyWithKeyboard(message.Chat.ID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// setTaskCompleted toggles completion from a button press
func (b *Bot) setTaskCompleted(ctx context.Context, chatID int64, user *models.User, taskIDText string, completed bool) {
	taskID, err := strconv.ParseInt(taskIDText, 10, 64)
	if err != nil {
		return
	}
	if err := b.taskRepo.SetCompleted(ctx, user.ID, taskID, completed); err != nil {
		log.Printf("Error toggling task %d: %v", taskID, err)
		b.reply(chatID, "Could not update the session. Please try again.")
		return
	}
	if completed {
		b.reply(chatID, "Marked done. It now counts toward your progress and streak.")
	} else {
		b.reply(chatID, "Marked not done.")
	}
}

// handleAdd schedules a session: /add <minutes> <tag-slug> <title>
func (b *Bot) handleAdd(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	fields := strings.Fields(message.CommandArguments())
	if len(fields) < 3 {
		b.reply(message.Chat.ID, "Usage: /add <minutes> <tag-slug> <title>\nExample: /add 45 sql Window functions")
		return
	}

	minutes, err := strconv.Atoi(fields[0])
	if err != nil || minutes <= 0 {
		b.reply(message.Chat.ID, "Minutes must be a positive number.")
		return
	}

	tag, err := b.tagRepo.GetBySlug(ctx, user.ID, fields[1])
	if err != nil {
		log.Printf("Error loading tag: %v", err)
		b.reply(message.Chat.ID, "Could not load the tag. Please try again.")
		return
	}
	if tag == nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No tag with slug %q. See /tags.", fields[1]))
		return
	}

	task := &models.Task{
		UserID:          user.ID,
		Title:           strings.Join(fields[2:], " "),
		DurationMinutes: &minutes,
		ScheduledAt:     time.Now(),
	}
	if err := b.taskRepo.Create(ctx, task, []int64{tag.ID}); err != nil {
		log.Printf("Error creating task: %v", err)
		b.reply(message.Chat.ID, "Could not create the session. Please try again.")
		return
	}

	b.reply(message.Chat.ID, fmt.Sprintf("Scheduled: %s (%d min, %s) for today.", task.Title, minutes, tag.Name))
}

// handleProgress shows aggregate statistics
func (b *Bot) handleProgress(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	stats, err := b.progress.Stats(ctx, user.ID)
	if err != nil {
		log.Printf("Error computing stats for user %d: %v", user.ID, err)
		b.reply(message.Chat.ID, "Could not load your progress. Please try again.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your progress\n")
	sb.WriteString(fmt.Sprintf("Total time: %s\n", formatMinutes(stats.TotalMinutes)))
	sb.WriteString(fmt.Sprintf("This week: %s (last week %s)\n",
		formatMinutes(stats.WeekMinutes), formatMinutes(stats.LastWeekMinutes)))
	sb.WriteString(fmt.Sprintf("Streak: %d day(s)\n", stats.Streak))
	sb.WriteString(fmt.Sprintf("Sessions completed: %d of %d\n", stats.CompletedTasksCount, stats.TotalTasksCount))

	if len(stats.ByTag) > 0 {
		sb.WriteString("\nBy tag:\n")
		for i, entry := range stats.ByTag {
			if i == 5 {
				break
			}
			sb.WriteString(fmt.Sprintf("  %s — %s over %d session(s)\n",
				entry.Name, formatMinutes(entry.Minutes), entry.Count))
		}
	}

	sb.WriteString("\nWeekly:\n")
	for _, bucket := range stats.WeeklyData {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", bucket.Label, formatMinutes(bucket.Minutes)))
	}

	b.reply(message.Chat.ID, sb.String())
}

// handleTags lists the user's tags
func (b *Bot) handleTags(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	tags, err := b.tagRepo.ListByUser(ctx, user.ID)
	if err != nil {
		log.Printf("Error loading tags: %v", err)
		b.reply(message.Chat.ID, "Could not load your tags. Please try again.")
		return
	}
	if len(tags) == 0 {
		b.reply(message.Chat.ID, "No tags yet. Run /start to pick a profession, or /newtag <name>.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Your tags:\n")
	for _, tag := range tags {
		sb.WriteString(fmt.Sprintf("  %s (%s)\n", tag.Name, tag.Slug))
	}
	sb.WriteString("\n/newtag <name> to add, /deltag <slug> to remove.")
	b.reply(message.Chat.ID, sb.String())
}

// handleNewTag creates a tag: /newtag <name>
func (b *Bot) handleNewTag(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	name := strings.TrimSpace(message.CommandArguments())
	slug := util.Slugify(name)
	if slug == "" {
		b.reply(message.Chat.ID, "Usage: /newtag <name> — the name needs at least one letter or digit.")
		return
	}

	existing, err := b.tagRepo.GetBySlug(ctx, user.ID, slug)
	if err != nil {
		log.Printf("Error checking tag: %v", err)
		b.reply(message.Chat.ID, "Could not create the tag. Please try again.")
		return
	}
	if existing != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("Tag %q already exists.", existing.Name))
		return
	}

	tag := &models.Tag{UserID: user.ID, Name: name, Slug: slug}
	if err := b.tagRepo.Create(ctx, tag); err != nil {
		log.Printf("Error creating tag: %v", err)
		b.reply(message.Chat.ID, "Could not create the tag. Please try again.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Created tag %s (%s).", tag.Name, tag.Slug))
}

// handleDeleteTag removes a tag: /deltag <slug>
func (b *Bot) handleDeleteTag(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	slug := strings.TrimSpace(message.CommandArguments())
	if slug == "" {
		b.reply(message.Chat.ID, "Usage: /deltag <slug> — see /tags for slugs.")
		return
	}

	tag, err := b.tagRepo.GetBySlug(ctx, user.ID, slug)
	if err != nil {
		log.Printf("Error loading tag: %v", err)
		b.reply(message.Chat.ID, "Could not delete the tag. Please try again.")
		return
	}
	if tag == nil {
		b.reply(message.Chat.ID, fmt.Sprintf("No tag with slug %q.", slug))
		return
	}

	if err := b.tagRepo.Delete(ctx, user.ID, tag.ID); err != nil {
		log.Printf("Error deleting tag: %v", err)
		b.reply(message.Chat.ID, "Could not delete the tag. Please try again.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Deleted tag %s and its session links.", tag.Name))
}

// handleApplications lists job applications
func (b *Bot) handleApplications(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	status := strings.TrimSpace(message.CommandArguments())
	apps, err := b.appRepo.ListByUser(ctx, user.ID, status)
	if err != nil {
		log.Printf("Error loading applications: %v", err)
		b.reply(message.Chat.ID, "Could not load your applications. Please try again.")
		return
	}
	if len(apps) == 0 {
		b.reply(message.Chat.ID, "No applications tracked yet. /newapp <company> | <role> to add one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Applications:\n")
	for i, app := range apps {
		if i == b.config.MaxApplicationsShown {
			sb.WriteString(fmt.Sprintf("...and %d more\n", len(apps)-i))
			break
		}
		sb.WriteString(fmt.Sprintf("  %s — %s [%s]\n", app.Company, app.Role, app.Status))
	}
	sb.WriteString("\n/export to download the full list as XLSX.")
	b.reply(message.Chat.ID, sb.String())
}

// handleNewApplication tracks an application: /newapp <company> | <role> | <status>
func (b *Bot) handleNewApplication(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	parts := strings.Split(message.CommandArguments(), "|")
	company := strings.TrimSpace(parts[0])
	if company == "" {
		b.reply(message.Chat.ID, "Usage: /newapp <company> | <role> | <status>\nExample: /newapp Acme | Data Scientist | applied")
		return
	}

	app := &models.Application{UserID: user.ID, Company: company}
	if len(parts) > 1 {
		app.Role = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		app.Status = strings.TrimSpace(parts[2])
	}
	if app.Status == models.ApplicationStatusApplied {
		now := time.Now()
		app.AppliedAt = &now
	}

	if err := b.appRepo.Create(ctx, app); err != nil {
		log.Printf("Error creating application: %v", err)
		b.reply(message.Chat.ID, "Could not save the application. Please try again.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("Tracking %s — %s [%s].", app.Company, app.Role, app.Status))
}

// handleExport sends the applications as an XLSX document
func (b *Bot) handleExport(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	apps, err := b.appRepo.ListByUser(ctx, user.ID, "")
	if err != nil {
		log.Printf("Error loading applications: %v", err)
		b.reply(message.Chat.ID, "Could not load your applications. Please try again.")
		return
	}
	if len(apps) == 0 {
		b.reply(message.Chat.ID, "Nothing to export yet.")
		return
	}

	buf, err := export.ApplicationsXLSX(apps)
	if err != nil {
		log.Printf("Error exporting applications: %v", err)
		b.reply(message.Chat.ID, "Could not build the export. Please try again.")
		return
	}

	doc := tgbotapi.NewDocument(message.Chat.ID, tgbotapi.FileBytes{
		Name:  "applications.xlsx",
		Bytes: buf.Bytes(),
	})
	if _, err := b.api.Send(doc); err != nil {
		log.Printf("Error sending export: %v", err)
		b.reply(message.Chat.ID, "Could not send the export. Please try again.")
	}
}

// handleSQLPractice lists questions or opens one directly: /sql [slug]
func (b *Bot) handleSQLPractice(ctx context.Context, message *tgbotapi.Message) {
	slug := strings.TrimSpace(message.CommandArguments())
	if slug != "" {
		b.startSQLQuestion(ctx, message.Chat.ID, message.From.ID, slug)
		return
	}

	questions, err := b.questionRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Error loading questions: %v", err)
		b.reply(message.Chat.ID, "Could not load the questions. Please try again.")
		return
	}
	if len(questions) == 0 {
		b.reply(message.Chat.ID, "No practice questions available.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, q := range questions {
		label := fmt.Sprintf("%s (%s)", q.Title, q.Difficulty)
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, "sql:"+q.Slug),
		})
	}
	b.replyWithKeyboard(message.Chat.ID, "Pick a question:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// startSQLQuestion shows a question and waits for the user's query
func (b *Bot) startSQLQuestion(ctx context.Context, chatID, telegramID int64, slug string) {
	question, err := b.questionRepo.GetBySlug(ctx, slug)
	if err != nil {
		log.Printf("Error loading question: %v", err)
		b.reply(chatID, "Could not load the question. Please try again.")
		return
	}
	if question == nil {
		b.reply(chatID, "That question doesn't exist. See /sql.")
		return
	}

	b.userStates[telegramID] = UserState{
		State:     stateAwaitingQuery,
		Data:      question.Slug,
		Timestamp: time.Now(),
	}

	text := fmt.Sprintf("%s (%s)\n\n%s\n\nSchema:\n%s\n\nSend your SELECT query as a message.",
		question.Title, question.Difficulty, question.ProblemStatement, question.SchemaSQL)
	b.reply(chatID, text)
}

// handleText handles non-command messages according to conversation state
func (b *Bot) handleText(ctx context.Context, message *tgbotapi.Message) {
	state, ok := b.userStates[message.From.ID]
	if !ok || state.State != stateAwaitingQuery {
		b.reply(message.Chat.ID, "Not sure what to do with that. See /help.")
		return
	}

	question, err := b.questionRepo.GetBySlug(ctx, state.Data)
	if err != nil || question == nil {
		delete(b.userStates, message.From.ID)
		b.reply(message.Chat.ID, "Lost track of the question, sorry. Pick it again with /sql.")
		return
	}

	result, err := sqlpractice.RunQuery(ctx, question, message.Text)
	if err != nil {
		b.reply(message.Chat.ID, fmt.Sprintf("That didn't run: %v\n\nTry again, or /sql to switch questions.", err))
		return
	}

	var sb strings.Builder
	if result.Correct {
		sb.WriteString("Correct!\n\n")
	} else {
		sb.WriteString("Not quite — the result doesn't match.\n\n")
	}
	sb.WriteString(formatResult(result))

	if b.aiEnabled {
		feedback, err := b.chatGPT.FeedbackOnQuery(ctx, question.ProblemStatement, message.Text, result.Correct)
		if err != nil {
			log.Printf("Error getting AI feedback: %v", err)
		} else {
			sb.WriteString("\nCoach: " + feedback)
		}
	}

	if result.Correct {
		delete(b.userStates, message.From.ID)
		sb.WriteString("\n\nPick another with /sql.")
	} else {
		sb.WriteString("\n\nSend another query, or /sql to switch questions.")
	}
	b.reply(message.Chat.ID, sb.String())
}

// handleRemind configures the daily reminder: /remind <hour> or /remind off
func (b *Bot) handleRemind(ctx context.Context, message *tgbotapi.Message) {
	user, err := b.resolveUser(ctx, message.From)
	if err != nil {
		log.Printf("Error resolving user: %v", err)
		return
	}

	arg := strings.TrimSpace(message.CommandArguments())
	if arg == "off" {
		if err := b.userRepo.SetNotification(ctx, user.ID, false, user.NotificationHour); err != nil {
			log.Printf("Error disabling reminders: %v", err)
			b.reply(message.Chat.ID, "Could not update your reminders. Please try again.")
			return
		}
		b.reply(message.Chat.ID, "Daily reminders are off.")
		return
	}

	hour := b.config.DefaultNotificationHour
	if arg != "" {
		hour, err = strconv.Atoi(arg)
		if err != nil || hour < 0 || hour > 23 {
			b.reply(message.Chat.ID, "Usage: /remind <hour 0-23>, or /remind off.")
			return
		}
	}

	if err := b.userRepo.SetNotification(ctx, user.ID, true, hour); err != nil {
		log.Printf("Error enabling reminders: %v", err)
		b.reply(message.Chat.ID, "Could not update your reminders. Please try again.")
		return
	}
	b.reply(message.Chat.ID, fmt.Sprintf("I'll nudge you at %02d:00 on days with unfinished sessions.", hour))
}

// formatResult renders a query result for chat
func formatResult(result *sqlpractice.RunResult) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(result.Columns, " | "))
	sb.WriteString("\n")
	for _, row := range result.Rows {
		sb.WriteString(strings.Join(row, " | "))
		sb.WriteString("\n")
	}
	if result.RowCount > len(result.Rows) {
		sb.WriteString(fmt.Sprintf("...%d rows total\n", result.RowCount))
	}
	return sb.String()
}

// formatMinutes renders a minute total as "1h 30m"
func formatMinutes(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
