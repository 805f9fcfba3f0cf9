package compose

// Subject is the fixed subject line of the confirmation email.
const Subject = "אישור פגישה"

// reminderCoupleTemplate is the prefilled reminder for a meeting with two
// attendees. Tokens are replaced by the composer.
const reminderCoupleTemplate = `שלום {client},
רק רצינו להזכיר לכם שאתם מוזמנים לפגישת ייעוץ שתתקיים ביום {day_name}, {date}, בשעה {time}.

אם יש מצב שאחד מכם לא יוכל להגיע, נשמח לעדכון מראש כדי שנתאם מועד חדש. כדאי להגיע יחד ולהציג את התמונה המלאה, כך נוכל להתאים את הייעוץ בדיוק אליכם.

לפני הפגישה:
- הכינו רשימה של הנושאים שמעסיקים אתכם.
- אם יש מסמכים רלוונטיים - הביאו אותם לפגישה.
- חשבו מראש על המטרות שלכם, זה יעזור לנו להתמקד בעיקר.

נתראה בקרוב,
{consultant_name}
יועץ כלכלי מטעם עמותת פעמונים`

// reminderSingleTemplate is the prefilled reminder for a single attendee.
const reminderSingleTemplate = `שלום {client},
רצינו להזכיר לך את פגישת הייעוץ הטלפונית שתתקיים ביום {day_name}, {date}, בשעה {time}. הפגישה צפויה להימשך כ-30 דקות.

אני, {consultant_name}, יועץ כלכלי מטעם עמותת פעמונים, אצור איתך קשר במועד שנקבע. כדאי להכין מראש כל מסמך או שאלה שתרצו לעבור עליהם, כך נפיק את המירב מהפגישה.

חשוב!
- אם לא נוצר קשר במועד שנקבע, אנא סמסו לי ונתאם מחדש.
- אם המועד כבר לא מתאים, עדכנו אותי מראש.

בברכה,
{consultant_name}
יועץ כלכלי מטעם עמותת פעמונים`

// htmlEmailTemplate is the confirmation email body. Every interpolated
// value is escaped by the composer before substitution.
const htmlEmailTemplate = `<html><body style="font-family: Arial, sans-serif; direction: rtl;">
<p>שלום,</p>

<p><strong>קישורים שימושיים:</strong></p>
<p>{whatsapp_links_html}<br>
 <a href="{calendar_link}" style="color: #4285F4; text-decoration: underline; font-weight: bold;">הוספה ליומן Google Calendar</a></p>

<p><strong>פרטי הפגישה:</strong></p>
<p> תאריך: {date}<br>
 שעה: {time}<br>
 לקוח: {client}<br>
 טלפון: {phone}<br>
 אימייל: {email}{additional_attendee_html}</p>

<p>בהצלחה!</p>
</body></html>`
